package taxlots

// HoldingDays returns the holding period of a lot in calendar days as of a
// date. The dependency on "now" is the caller's: pass an explicit asOf so
// every computation stays deterministic and reproducible.
func HoldingDays(l Lot, asOf Date) int { return DaysBetween(l.Acquired, asOf) }

// LotValue is the unrealized standing of one open lot.
type LotValue struct {
	LotID       string
	Quantity    Quantity
	CostPerUnit Money
	Unrealized  Money
	HoldingDays int
	LongTerm    bool
}

// UnrealizedReport buckets the unrealized gain or loss of a position into
// short-term and long-term holdings.
type UnrealizedReport struct {
	Symbol    string
	AsOf      Date
	Price     Money // current price per unit
	ShortTerm Money
	LongTerm  Money
	Total     Money
	Lots      []LotValue
}

// Unrealized values every open lot of a symbol at the current price. It is
// a pure function over the snapshot: identical inputs always yield
// identical outputs, and no lot is touched.
func (p Policy) Unrealized(lots Lots, symbol string, price Money, asOf Date) *UnrealizedReport {
	report := &UnrealizedReport{
		Symbol:    symbol,
		AsOf:      asOf,
		Price:     price,
		ShortTerm: M(0, price.Currency()),
		LongTerm:  M(0, price.Currency()),
	}

	for _, l := range lots {
		if l.Symbol != symbol || !l.Open() {
			continue
		}
		days := HoldingDays(l, asOf)
		long := p.LongTerm(days)
		gain := price.Sub(l.CostPerUnit).Mul(l.Quantity)

		if long {
			report.LongTerm = report.LongTerm.Add(gain)
		} else {
			report.ShortTerm = report.ShortTerm.Add(gain)
		}
		report.Lots = append(report.Lots, LotValue{
			LotID:       l.ID,
			Quantity:    l.Quantity,
			CostPerUnit: l.CostPerUnit,
			Unrealized:  gain,
			HoldingDays: days,
			LongTerm:    long,
		})
	}

	report.Total = report.ShortTerm.Add(report.LongTerm)
	return report
}
