package taxlots

import "fmt"

// InsufficientLotsError reports a disposal whose quantity exceeds the
// quantity held across open lots for the symbol. The engine guarantees
// that no lot was mutated when this error is returned.
type InsufficientLotsError struct {
	Symbol    string
	Requested Quantity
	Available Quantity
}

// Shortfall returns the missing quantity.
func (e *InsufficientLotsError) Shortfall() Quantity {
	return e.Requested.Sub(e.Available)
}

func (e *InsufficientLotsError) Error() string {
	return fmt.Sprintf("cannot dispose %s of %s: open lots hold only %s (short %s)",
		e.Requested, e.Symbol, e.Available, e.Shortfall())
}

// InvalidTransactionError reports a transaction rejected before any
// allocation began: non-positive price where disallowed, negative fees or
// quantity, or a portfolio mismatch between the transaction and the
// supplied lots.
type InvalidTransactionError struct {
	ID     string // transaction id, may be empty
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	if e.ID == "" {
		return "invalid transaction: " + e.Reason
	}
	return fmt.Sprintf("invalid transaction %s: %s", e.ID, e.Reason)
}

// errInvalidf builds an InvalidTransactionError with no transaction id.
func errInvalidf(format string, args ...any) *InvalidTransactionError {
	return &InvalidTransactionError{Reason: fmt.Sprintf(format, args...)}
}
