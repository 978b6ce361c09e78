package taxlots

import (
	"fmt"
	"slices"
)

// WashStatus marks a lot's involvement in a wash sale.
type WashStatus int

const (
	// NoWash is the default status of a lot.
	NoWash WashStatus = iota
	// PotentialWash marks a lot acquired close enough to an open loss
	// position that a disposal could trigger a wash sale.
	PotentialWash
	// WashSaleAdjusted marks a replacement lot whose basis absorbed a
	// disallowed loss.
	WashSaleAdjusted
)

func (s WashStatus) String() string {
	switch s {
	case NoWash:
		return "none"
	case PotentialWash:
		return "potential"
	case WashSaleAdjusted:
		return "wash-sale"
	default:
		return "unknown"
	}
}

// ParseWashStatus parses a string into a WashStatus.
func ParseWashStatus(s string) (WashStatus, error) {
	switch s {
	case "", "none":
		return NoWash, nil
	case "potential":
		return PotentialWash, nil
	case "wash-sale":
		return WashSaleAdjusted, nil
	default:
		return 0, fmt.Errorf("unknown wash status %q", s)
	}
}

// Lot is a single acquisition of units of a security, tracked with its own
// cost basis and date, independent of other acquisitions of the same
// security.
//
// A lot is created by exactly one acquisition transaction and is never
// merged with another lot. Its quantity only decreases, through disposal
// allocations; its basis only increases, through wash-sale adjustments.
// Once the quantity reaches zero the lot is closed but retained as an
// audit record.
type Lot struct {
	ID          string
	Portfolio   string
	Symbol      string
	Quantity    Quantity
	CostPerUnit Money // per-unit acquisition price including amortized fees
	TotalCost   Money // Quantity × CostPerUnit, within rounding tolerance
	Acquired    Date
	Wash        WashStatus
	WashAdjust  Money  // cumulative wash-sale basis increase, never negative
	Source      string // id of the acquisition transaction, when known
}

// Open reports whether the lot still holds units.
func (l Lot) Open() bool { return l.Quantity.IsPositive() }

// Currency returns the currency of the lot's cost basis.
func (l Lot) Currency() string { return l.CostPerUnit.Currency() }

// consume decrements the lot by a disposed quantity and recomputes the
// total basis from the unchanged per-unit basis.
func (l *Lot) consume(q Quantity) {
	l.Quantity = l.Quantity.Sub(q)
	l.TotalCost = l.CostPerUnit.Mul(l.Quantity)
}

// Lots is a snapshot of the lot collection for one portfolio.
type Lots []Lot

// Clone returns a deep copy of the snapshot. Lot values contain no shared
// references, a plain slice copy is a full copy.
func (ls Lots) Clone() Lots { return slices.Clone(ls) }

// OpenQuantity sums the quantity held across open lots of a symbol.
func (ls Lots) OpenQuantity(symbol string) Quantity {
	var total Quantity
	for _, l := range ls {
		if l.Symbol == symbol && l.Open() {
			total = total.Add(l.Quantity)
		}
	}
	return total
}

// OpenLots returns the open lots of a symbol, in snapshot order.
func (ls Lots) OpenLots(symbol string) Lots {
	var open Lots
	for _, l := range ls {
		if l.Symbol == symbol && l.Open() {
			open = append(open, l)
		}
	}
	return open
}

// ByID returns a pointer to the lot with the given id, or nil.
func (ls Lots) ByID(id string) *Lot {
	for i := range ls {
		if ls[i].ID == id {
			return &ls[i]
		}
	}
	return nil
}
