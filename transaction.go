package taxlots

import "fmt"

// Kind is the type of a transaction.
type Kind int

const (
	// Buy acquires units on the open market and creates a lot.
	Buy Kind = iota
	// Assignment acquires units through an option assignment and creates a lot.
	Assignment
	// Sell disposes units on the open market and consumes lots.
	Sell
	// Exercise disposes units through an option exercise and consumes lots.
	Exercise
	// Expiration disposes units at a zero price and consumes lots.
	Expiration
)

func (k Kind) String() string {
	switch k {
	case Buy:
		return "buy"
	case Assignment:
		return "assignment"
	case Sell:
		return "sell"
	case Exercise:
		return "exercise"
	case Expiration:
		return "expiration"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "assignment":
		return Assignment, nil
	case "sell":
		return Sell, nil
	case "exercise":
		return Exercise, nil
	case "expiration":
		return Expiration, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// Acquires reports whether the kind creates a lot.
func (k Kind) Acquires() bool { return k == Buy || k == Assignment }

// Disposes reports whether the kind consumes lots.
func (k Kind) Disposes() bool { return k == Sell || k == Exercise || k == Expiration }

// Transaction is one acquisition or disposal of units of a security, as
// supplied by the transaction feed.
type Transaction struct {
	ID         string
	Portfolio  string
	Symbol     string
	Kind       Kind
	Quantity   Quantity // absolute number of units
	Price      Money    // per unit
	Fees       Money
	Trade      Date // execution date
	Settlement Date // defaults to the trade date when zero
}

// NewBuy creates a buy transaction settling on the trade date.
func NewBuy(id, portfolio, symbol string, quantity Quantity, price, fees Money, trade Date) Transaction {
	return Transaction{ID: id, Portfolio: portfolio, Symbol: symbol, Kind: Buy,
		Quantity: quantity, Price: price, Fees: fees, Trade: trade, Settlement: trade}
}

// NewSell creates a sell transaction settling on the trade date.
func NewSell(id, portfolio, symbol string, quantity Quantity, price, fees Money, trade Date) Transaction {
	return Transaction{ID: id, Portfolio: portfolio, Symbol: symbol, Kind: Sell,
		Quantity: quantity, Price: price, Fees: fees, Trade: trade, Settlement: trade}
}

// SettlesOn returns the settlement date, falling back to the trade date.
func (t Transaction) SettlesOn() Date {
	if t.Settlement.IsZero() {
		return t.Trade
	}
	return t.Settlement
}

// Validate checks the transaction against the supplied lot snapshot.
// It is called before any allocation begins; a failure guarantees that no
// lot was touched.
func (t Transaction) Validate(lots Lots) error {
	fail := func(format string, args ...any) error {
		return &InvalidTransactionError{ID: t.ID, Reason: fmt.Sprintf(format, args...)}
	}
	if t.Symbol == "" {
		return fail("symbol is missing")
	}
	if t.Trade.IsZero() {
		return fail("trade date is missing")
	}
	if t.Quantity.IsNegative() {
		return fail("quantity must not be negative, got %s", t.Quantity)
	}
	if t.Fees.IsNegative() {
		return fail("fees must not be negative, got %s", t.Fees)
	}
	if t.Price.IsNegative() {
		return fail("price must not be negative, got %s", t.Price)
	}
	// An expiration disposes at a zero price; every other kind trades at a
	// real price.
	if t.Price.IsZero() && t.Kind != Expiration {
		return fail("%s price must be positive, got %s", t.Kind, t.Price)
	}
	if t.Kind.Disposes() && t.Quantity.IsZero() {
		return fail("%s quantity must be positive, got %s", t.Kind, t.Quantity)
	}
	for _, l := range lots {
		if l.Portfolio != t.Portfolio {
			return fail("lot %s belongs to portfolio %q, not %q", l.ID, l.Portfolio, t.Portfolio)
		}
	}
	return nil
}
