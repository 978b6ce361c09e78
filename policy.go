package taxlots

import "github.com/shopspring/decimal"

// Policy groups the numeric heuristics of the engine so they can be tuned
// without touching allocation or detection logic.
type Policy struct {
	// WashWindowDays is the half-width of the wash-sale window. The full
	// window spans [disposal-WashWindowDays, disposal+WashWindowDays],
	// boundaries included.
	WashWindowDays int
	// RepurchaseWaitDays is the recommended wait before repurchasing a
	// harvested symbol, one day past the wash window.
	RepurchaseWaitDays int
	// LongTermDays is the holding period, in calendar days, beyond which a
	// position classifies long-term. A lot held exactly LongTermDays is
	// still short-term.
	LongTermDays int
	// NearTermDays is the lower bound of the "near long-term" band used by
	// the deferral recommendation: NearTermDays < held ≤ LongTermDays.
	NearTermDays int
	// MarginalRate is the assumed marginal tax rate used to estimate
	// harvesting savings.
	MarginalRate decimal.Decimal
	// RateSpread is the assumed spread between short-term and long-term
	// tax rates used to estimate deferral savings.
	RateSpread decimal.Decimal
}

// DefaultPolicy returns the standard heuristics: a 61-day wash window, the
// 365-day long-term cutoff with a 300-day near-term band, a 20% marginal
// rate and a 15% short/long spread.
func DefaultPolicy() Policy {
	return Policy{
		WashWindowDays:     30,
		RepurchaseWaitDays: 31,
		LongTermDays:       365,
		NearTermDays:       300,
		MarginalRate:       decimal.NewFromFloat(0.20),
		RateSpread:         decimal.NewFromFloat(0.15),
	}
}

// LongTerm reports whether a holding period in calendar days classifies
// long-term.
func (p Policy) LongTerm(days int) bool { return days > p.LongTermDays }

// WashWindow returns the wash-sale window centered on a disposal date.
func (p Policy) WashWindow(disposal Date) Range {
	return NewRange(disposal.Add(-p.WashWindowDays), disposal.Add(p.WashWindowDays))
}
