package taxlots

import "fmt"

// Strategy is the kind of tax optimization a recommendation proposes.
type Strategy int

const (
	// HarvestLoss proposes selling a losing position to realize the loss.
	HarvestLoss Strategy = iota
	// DeferGain proposes holding a short-term winner until it turns
	// long-term.
	DeferGain
)

func (s Strategy) String() string {
	switch s {
	case HarvestLoss:
		return "harvest-loss"
	case DeferGain:
		return "defer-gain"
	default:
		return "unknown"
	}
}

// Recommendation is one derived tax optimization for a symbol. The advisor
// reads a snapshot and a price; it never mutates lots.
type Recommendation struct {
	Strategy    Strategy
	Symbol      string
	Description string
	Savings     Money // estimated, under the policy's assumed rates
	Steps       []string
	Risks       []string
	Deadline    Date
}

// Advise derives harvest and deferral recommendations for a symbol from
// its unrealized standing. The deadline defaults to the calendar year-end
// of asOf.
func (p Policy) Advise(lots Lots, symbol string, price Money, asOf Date) []Recommendation {
	report := p.Unrealized(lots, symbol, price, asOf)
	if len(report.Lots) == 0 {
		return nil
	}

	deadline := asOf.EndOfYear()
	var recs []Recommendation

	if report.Total.IsNegative() {
		loss := report.Total.Abs()
		recs = append(recs, Recommendation{
			Strategy: HarvestLoss,
			Symbol:   symbol,
			Description: fmt.Sprintf("Sell %s to realize an unrealized loss of %s and offset gains elsewhere.",
				symbol, loss),
			Savings: loss.Scale(p.MarginalRate),
			Steps: []string{
				fmt.Sprintf("Sell the %s position of %s units.", symbol, report.totalQuantity()),
				fmt.Sprintf("Wait %d days before repurchasing %s to avoid triggering a wash sale.", p.RepurchaseWaitDays, symbol),
				"Compare the estimated savings against transaction costs before executing.",
			},
			Risks: []string{
				fmt.Sprintf("Repurchasing %s inside the %d-day window disallows the loss.", symbol, p.WashWindowDays),
				"The position may move while out of the market.",
				"Transaction costs erode the benefit of small harvests.",
			},
			Deadline: deadline,
		})
	}

	if report.ShortTerm.IsPositive() {
		if lot, ok := p.nearLongTerm(report); ok {
			days := p.LongTermDays + 1 - lot.HoldingDays
			recs = append(recs, Recommendation{
				Strategy: DeferGain,
				Symbol:   symbol,
				Description: fmt.Sprintf("Hold %s for %d more days so short-term gains of %s qualify for the long-term rate.",
					symbol, days, report.ShortTerm),
				Savings: report.ShortTerm.Scale(p.RateSpread),
				Steps: []string{
					fmt.Sprintf("Hold lot %s until day %d of its holding period.", lot.LotID, p.LongTermDays+1),
					"Re-check the position's unrealized gain before selling.",
				},
				Risks: []string{
					"The gain may shrink or reverse while waiting.",
					"Assumed tax rates may not match the actual bracket.",
				},
				Deadline: deadline,
			})
		}
	}

	return recs
}

// nearLongTerm returns the first open lot whose holding period lies in the
// near long-term band.
func (p Policy) nearLongTerm(report *UnrealizedReport) (LotValue, bool) {
	for _, lv := range report.Lots {
		if lv.HoldingDays > p.NearTermDays && lv.HoldingDays <= p.LongTermDays {
			return lv, true
		}
	}
	return LotValue{}, false
}

// totalQuantity sums the open units across the report's lots.
func (r *UnrealizedReport) totalQuantity() Quantity {
	var total Quantity
	for _, lv := range r.Lots {
		total = total.Add(lv.Quantity)
	}
	return total
}
