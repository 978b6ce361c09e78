package taxlots

import (
	"fmt"
	"sort"
)

// Allocation records the consumption of one lot by one disposal.
type Allocation struct {
	LotID       string
	Symbol      string
	Quantity    Quantity // units taken from this lot
	CostPerUnit Money    // lot basis per unit at allocation time
	Acquired    Date
	Disposed    Date  // settlement date of the disposal
	Gain        Money // realized gain or loss, fees prorated by quantity
	Wash        bool
	WashAdjust  Money // loss disallowed on this allocation
	HoldingDays int   // calendar days from acquisition to disposal
	LongTerm    bool  // held more than the long-term cutoff
}

// orderOpen returns the indexes into 'lots' of the open lots of a symbol,
// in the consumption order of the method. Ordering is stable: ties are
// broken by the lot's position in the snapshot.
func orderOpen(lots Lots, symbol string, method Method, specific []string) ([]int, error) {
	if method == Specific {
		return orderSpecific(lots, symbol, specific)
	}

	var order []int
	for i, l := range lots {
		if l.Symbol == symbol && l.Open() {
			order = append(order, i)
		}
	}
	switch method {
	case FIFO:
		sort.SliceStable(order, func(a, b int) bool {
			return lots[order[a]].Acquired.Before(lots[order[b]].Acquired)
		})
	case LIFO:
		sort.SliceStable(order, func(a, b int) bool {
			return lots[order[a]].Acquired.After(lots[order[b]].Acquired)
		})
	case HIFO:
		sort.SliceStable(order, func(a, b int) bool {
			return lots[order[a]].CostPerUnit.GreaterThan(lots[order[b]].CostPerUnit)
		})
	case LOFO:
		sort.SliceStable(order, func(a, b int) bool {
			return lots[order[a]].CostPerUnit.LessThan(lots[order[b]].CostPerUnit)
		})
	default:
		return nil, fmt.Errorf("unknown lot selection method: %d", method)
	}
	return order, nil
}

// orderSpecific resolves a caller-supplied lot id order. The order is
// consumed as given, no re-sort.
func orderSpecific(lots Lots, symbol string, specific []string) ([]int, error) {
	byID := make(map[string]int, len(lots))
	for i, l := range lots {
		byID[l.ID] = i
	}
	order := make([]int, 0, len(specific))
	seen := make(map[string]bool, len(specific))
	for _, id := range specific {
		if seen[id] {
			return nil, errInvalidf("specific allocation names lot %q twice", id)
		}
		seen[id] = true
		i, ok := byID[id]
		if !ok {
			return nil, errInvalidf("specific allocation names unknown lot %q", id)
		}
		l := lots[i]
		if l.Symbol != symbol {
			return nil, errInvalidf("specific allocation lot %q holds %s, not %s", id, l.Symbol, symbol)
		}
		if !l.Open() {
			return nil, errInvalidf("specific allocation lot %q is closed", id)
		}
		order = append(order, i)
	}
	return order, nil
}

// allocate consumes open lots of the working snapshot to satisfy a
// disposal. The snapshot is mutated in place; callers pass a clone and
// commit it only on full success.
//
// For each lot taken in method order, the allocated quantity is
// min(remaining, lot quantity), the fees are prorated proportionally to
// that quantity, and the realized gain is proceeds minus basis minus the
// fee share. If the ordered lots are exhausted before the disposal
// quantity is satisfied, allocate fails with InsufficientLotsError.
func allocate(tx Transaction, working Lots, method Method, specific []string, p Policy) ([]Allocation, error) {
	order, err := orderOpen(working, tx.Symbol, method, specific)
	if err != nil {
		return nil, err
	}

	var available Quantity
	for _, i := range order {
		available = available.Add(working[i].Quantity)
	}
	if available.LessThan(tx.Quantity) {
		return nil, &InsufficientLotsError{Symbol: tx.Symbol, Requested: tx.Quantity, Available: available}
	}

	settles := tx.SettlesOn()
	remaining := tx.Quantity
	var allocations []Allocation
	for _, i := range order {
		if remaining.IsZero() {
			break
		}
		l := &working[i]
		q := remaining.Min(l.Quantity)

		proceeds := tx.Price.Mul(q)
		basis := l.CostPerUnit.Mul(q)
		feeShare := tx.Fees.Mul(q).Div(tx.Quantity)
		days := DaysBetween(l.Acquired, settles)

		allocations = append(allocations, Allocation{
			LotID:       l.ID,
			Symbol:      l.Symbol,
			Quantity:    q,
			CostPerUnit: l.CostPerUnit,
			Acquired:    l.Acquired,
			Disposed:    settles,
			Gain:        proceeds.Sub(basis).Sub(feeShare),
			HoldingDays: days,
			LongTerm:    p.LongTerm(days),
		})
		l.consume(q)
		remaining = remaining.Sub(q)
	}
	if !remaining.IsZero() {
		// a partial disposal must never commit
		return nil, &InsufficientLotsError{Symbol: tx.Symbol, Requested: tx.Quantity, Available: tx.Quantity.Sub(remaining)}
	}
	return allocations, nil
}
