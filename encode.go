package taxlots

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// lotLine is a specialized struct for decoding a lot's JSONL line. Money
// fields travel as bare decimals plus one shared currency field.
type lotLine struct {
	ID          string          `json:"id"`
	Portfolio   string          `json:"portfolio"`
	Symbol      string          `json:"symbol"`
	Quantity    Quantity        `json:"quantity"`
	CostPerUnit decimal.Decimal `json:"costPerUnit"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	Currency    string          `json:"currency"`
	Acquired    Date            `json:"acquired"`
	Wash        string          `json:"wash,omitempty"`
	WashAdjust  decimal.Decimal `json:"washAdjust,omitempty"`
	Source      string          `json:"source,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface for Lot with a
// stable field order.
func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", l.ID)
	w.Append("portfolio", l.Portfolio)
	w.Append("symbol", l.Symbol)
	w.Append("quantity", l.Quantity)
	w.Append("costPerUnit", l.CostPerUnit.value)
	w.Append("totalCost", l.TotalCost.value)
	w.Optional("currency", l.Currency())
	w.Append("acquired", l.Acquired)
	if l.Wash != NoWash {
		w.Append("wash", l.Wash.String())
	}
	if !l.WashAdjust.IsZero() {
		w.Append("washAdjust", l.WashAdjust.value)
	}
	w.Optional("source", l.Source)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Lot.
func (l *Lot) UnmarshalJSON(data []byte) error {
	var line lotLine
	if err := json.Unmarshal(data, &line); err != nil {
		return err
	}
	wash, err := ParseWashStatus(line.Wash)
	if err != nil {
		return err
	}
	*l = Lot{
		ID:          line.ID,
		Portfolio:   line.Portfolio,
		Symbol:      line.Symbol,
		Quantity:    line.Quantity,
		CostPerUnit: M(line.CostPerUnit, line.Currency),
		TotalCost:   M(line.TotalCost, line.Currency),
		Acquired:    line.Acquired,
		Wash:        wash,
		WashAdjust:  M(line.WashAdjust, line.Currency),
		Source:      line.Source,
	}
	return nil
}

// txLine is a specialized struct for decoding a transaction's JSONL line.
type txLine struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Portfolio  string          `json:"portfolio"`
	Symbol     string          `json:"symbol"`
	Quantity   Quantity        `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Fees       decimal.Decimal `json:"fees"`
	Currency   string          `json:"currency"`
	Trade      Date            `json:"trade"`
	Settlement Date            `json:"settlement,omitzero"`
}

// MarshalJSON implements the json.Marshaler interface for Transaction with
// a stable field order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("kind", t.Kind.String())
	w.Append("portfolio", t.Portfolio)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.value)
	w.Append("fees", t.Fees.value)
	w.Optional("currency", t.Price.Currency())
	w.Append("trade", t.Trade)
	if !t.Settlement.IsZero() && t.Settlement != t.Trade {
		w.Append("settlement", t.Settlement)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var line txLine
	if err := json.Unmarshal(data, &line); err != nil {
		return err
	}
	kind, err := ParseKind(line.Kind)
	if err != nil {
		return err
	}
	settlement := line.Settlement
	if settlement.IsZero() {
		settlement = line.Trade
	}
	*t = Transaction{
		ID:         line.ID,
		Kind:       kind,
		Portfolio:  line.Portfolio,
		Symbol:     line.Symbol,
		Quantity:   line.Quantity,
		Price:      M(line.Price, line.Currency),
		Fees:       M(line.Fees, line.Currency),
		Trade:      line.Trade,
		Settlement: settlement,
	}
	return nil
}

// EncodeLots writes a lot snapshot as a stream of JSONL data, one lot per
// line, in snapshot order.
func EncodeLots(w io.Writer, lots Lots) error {
	for _, l := range lots {
		b, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("could not encode lot %s: %w", l.ID, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLots decodes a lot snapshot from a stream of JSONL data.
func DecodeLots(r io.Reader) (Lots, error) {
	var lots Lots
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var l Lot
		if err := json.Unmarshal(lineBytes, &l); err != nil {
			return nil, fmt.Errorf("could not decode lot line %q: %w", string(lineBytes), err)
		}
		lots = append(lots, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lots, nil
}

// EncodeTransactions writes a transaction feed as a stream of JSONL data.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, t := range txs {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("could not encode transaction %s: %w", t.ID, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTransactions decodes a transaction feed from a stream of JSONL data.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var t Transaction
		if err := json.Unmarshal(lineBytes, &t); err != nil {
			return nil, fmt.Errorf("could not decode transaction line %q: %w", string(lineBytes), err)
		}
		txs = append(txs, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return txs, nil
}
