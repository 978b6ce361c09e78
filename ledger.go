package taxlots

import (
	"fmt"
	"sort"
)

// Result is the outcome of processing one transaction.
type Result struct {
	Transaction Transaction
	UpdatedLots Lots              // the full committed snapshot
	NewLots     Lots              // lots created by an acquisition
	Allocations []Allocation      // per-lot consumption of a disposal
	WashSale    *WashSaleAnalysis // nil for gains, Triggered=false when a loss found no replacement
}

// Ledger owns the authoritative lot collection for one portfolio and is
// the single entry point for transaction processing.
//
// Processing is all-or-nothing: every computation runs against a working
// copy of the snapshot and is committed only on full success. A Ledger is
// not safe for concurrent use; callers apply transactions one at a time,
// in transaction-date order.
type Ledger struct {
	Policy Policy
	lots   Lots
}

// NewLedger creates a ledger over a snapshot of lots. The snapshot is
// copied; the caller's slice stays untouched.
func NewLedger(lots Lots) *Ledger {
	return &Ledger{Policy: DefaultPolicy(), lots: lots.Clone()}
}

// Lots returns a copy of the current snapshot.
func (l *Ledger) Lots() Lots { return l.lots.Clone() }

// OpenQuantity sums the quantity held across open lots of a symbol.
func (l *Ledger) OpenQuantity(symbol string) Quantity { return l.lots.OpenQuantity(symbol) }

// Process applies one transaction under a lot selection method and commits
// the resulting snapshot.
func (l *Ledger) Process(tx Transaction, method Method) (*Result, error) {
	if method == Specific {
		return nil, errInvalidf("specific allocation requires a lot order, use ProcessSpecific")
	}
	return l.process(tx, method, nil)
}

// ProcessSpecific applies a disposal consuming the given lots in the given
// order.
func (l *Ledger) ProcessSpecific(tx Transaction, lotIDs []string) (*Result, error) {
	if !tx.Kind.Disposes() {
		return nil, errInvalidf("specific allocation applies to disposals, got %s", tx.Kind)
	}
	return l.process(tx, Specific, lotIDs)
}

// ProcessAll applies a batch of transactions in trade-date order, each one
// consuming the previous snapshot. The first failure stops the batch; the
// results of the already committed transactions are returned alongside the
// error.
func (l *Ledger) ProcessAll(txs []Transaction, method Method) ([]*Result, error) {
	ordered := make([]Transaction, len(txs))
	copy(ordered, txs)
	// Stable: same-day transactions keep their feed order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Trade.Before(ordered[j].Trade)
	})

	var results []*Result
	for _, tx := range ordered {
		r, err := l.Process(tx, method)
		if err != nil {
			return results, fmt.Errorf("processing %s %s on %s: %w", tx.Kind, tx.Symbol, tx.Trade, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (l *Ledger) process(tx Transaction, method Method, specific []string) (*Result, error) {
	if err := tx.Validate(l.lots); err != nil {
		return nil, err
	}

	switch {
	case tx.Kind.Acquires():
		return l.acquire(tx)
	case tx.Kind.Disposes():
		return l.dispose(tx, method, specific)
	default:
		return nil, errInvalidf("unhandled transaction kind: %s", tx.Kind)
	}
}

// acquire creates exactly one new lot. A zero-quantity acquisition yields
// a zero-size, zero-basis lot rather than an error, preserving transaction
// history without a zero divisor.
func (l *Ledger) acquire(tx Transaction) (*Result, error) {
	perUnit := M(0, tx.Price.Currency())
	if !tx.Quantity.IsZero() {
		perUnit = tx.Price.Add(tx.Fees.Div(tx.Quantity))
	}

	lot := Lot{
		ID:          l.newLotID(tx),
		Portfolio:   tx.Portfolio,
		Symbol:      tx.Symbol,
		Quantity:    tx.Quantity,
		CostPerUnit: perUnit,
		TotalCost:   perUnit.Mul(tx.Quantity),
		Acquired:    tx.SettlesOn(),
		Source:      tx.ID,
	}

	updated := append(l.lots.Clone(), lot)
	l.lots = updated
	return &Result{
		Transaction: tx,
		UpdatedLots: updated.Clone(),
		NewLots:     Lots{lot},
	}, nil
}

// dispose allocates against open lots, then runs the wash-sale scan when
// any allocation realized a loss.
func (l *Ledger) dispose(tx Transaction, method Method, specific []string) (*Result, error) {
	// Check the whole position first so the caller gets the real
	// shortfall, not the shortfall of a specific lot order.
	available := l.lots.OpenQuantity(tx.Symbol)
	if available.LessThan(tx.Quantity) {
		return nil, &InsufficientLotsError{Symbol: tx.Symbol, Requested: tx.Quantity, Available: available}
	}

	working := l.lots.Clone()
	allocations, err := allocate(tx, working, method, specific, l.Policy)
	if err != nil {
		return nil, err
	}

	var analysis *WashSaleAnalysis
	for _, a := range allocations {
		if a.Gain.IsNegative() {
			analysis = detectWashSale(tx, allocations, working, l.Policy)
			break
		}
	}

	l.lots = working
	return &Result{
		Transaction: tx,
		UpdatedLots: working.Clone(),
		Allocations: allocations,
		WashSale:    analysis,
	}, nil
}

// newLotID derives a deterministic lot id: the source transaction id when
// present, otherwise symbol, date and snapshot position.
func (l *Ledger) newLotID(tx Transaction) string {
	if tx.ID != "" {
		return tx.ID
	}
	return fmt.Sprintf("%s-%s-%d", tx.Symbol, tx.Trade, len(l.lots)+1)
}
