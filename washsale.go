package taxlots

// WashSaleAnalysis is the outcome of the wash-sale scan for one disposal.
type WashSaleAnalysis struct {
	Triggered     bool
	Disallowed    Money    // total loss disallowed across this disposal's allocations
	Replacements  []string // ids of the lots that absorbed the disallowed loss
	Window        Range    // the scanned acquisition window
	AdjustedBasis Money    // basis actually added onto replacement lots
}

// detectWashSale inspects a disposal's allocations for disallowed losses
// and redistributes them onto replacement lots.
//
// A replacement lot is any lot of the same symbol and portfolio, open or
// closed, acquired inside the window centered on the disposal date,
// excluding the lots consumed by this disposal. When at least one loss
// allocation and one replacement exist, every loss allocation is zeroed
// and flagged, and the disallowed total is split evenly across the
// replacements, raising their per-unit basis.
//
// The working snapshot and the allocations are mutated in place; callers
// pass clones and commit them only on full success.
func detectWashSale(tx Transaction, allocations []Allocation, working Lots, p Policy) *WashSaleAnalysis {
	window := p.WashWindow(tx.SettlesOn())
	analysis := &WashSaleAnalysis{
		Window:     window,
		Disallowed: M(0, tx.Price.Currency()),
	}

	var losses []int
	consumed := make(map[string]struct{}, len(allocations))
	for i, a := range allocations {
		consumed[a.LotID] = struct{}{}
		if a.Gain.IsNegative() {
			losses = append(losses, i)
		}
	}
	if len(losses) == 0 {
		return analysis
	}

	var candidates []int
	for i, l := range working {
		if l.Symbol != tx.Symbol || l.Portfolio != tx.Portfolio {
			continue
		}
		if _, sold := consumed[l.ID]; sold {
			continue
		}
		if window.Contains(l.Acquired) {
			candidates = append(candidates, i)
		}
	}
	// Without a replacement acquisition nearby the loss stands; this guard
	// also keeps the even split below away from a zero divisor.
	if len(candidates) == 0 {
		return analysis
	}

	var disallowed Money
	for _, i := range losses {
		disallowed = disallowed.Add(allocations[i].Gain.Abs())
	}

	for _, i := range losses {
		a := &allocations[i]
		a.Wash = true
		a.WashAdjust = a.Gain.Abs()
		a.Gain = M(0, a.Gain.Currency())
	}

	share := disallowed.Div(Q(len(candidates)))
	var applied Money
	for _, i := range candidates {
		l := &working[i]
		l.Wash = WashSaleAdjusted
		l.WashAdjust = l.WashAdjust.Add(share)
		// A closed candidate keeps its audit basis: with no units left
		// there is no per-unit basis to raise.
		if l.Open() {
			l.CostPerUnit = l.CostPerUnit.Add(share.Div(l.Quantity))
			l.TotalCost = l.CostPerUnit.Mul(l.Quantity)
			applied = applied.Add(share)
		}
		analysis.Replacements = append(analysis.Replacements, l.ID)
	}

	analysis.Triggered = true
	analysis.Disallowed = disallowed
	analysis.AdjustedBasis = applied
	return analysis
}

// MarkPotentialWash flags open lots acquired within the wash window ending
// on 'asOf': disposing the position at a loss now would turn them into
// replacement lots. The returned snapshot is a copy, the input is left
// untouched.
func MarkPotentialWash(lots Lots, symbol string, asOf Date, p Policy) Lots {
	marked := lots.Clone()
	for i := range marked {
		l := &marked[i]
		if l.Symbol != symbol || !l.Open() || l.Wash == WashSaleAdjusted {
			continue
		}
		if DaysBetween(l.Acquired, asOf) <= p.WashWindowDays {
			l.Wash = PotentialWash
		}
	}
	return marked
}
