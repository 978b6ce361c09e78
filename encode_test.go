package taxlots

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestEncodeLotFieldOrder(t *testing.T) {
	lot := lotOf("l1", "main", "AAPL", Q(100), USD(150.1), on("2023-01-10"))
	lot.Source = "b1"

	b, err := json.Marshal(lot)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"l1","portfolio":"main","symbol":"AAPL","quantity":100,"costPerUnit":150.1,"totalCost":15010.0,"currency":"USD","acquired":"2023-01-10","source":"b1"}`
	if string(b) != want {
		t.Errorf("marshal:\n got %s\nwant %s", b, want)
	}
}

func TestEncodeLotOmitsDefaults(t *testing.T) {
	lot := lotOf("l1", "main", "AAPL", Q(100), USD(150), on("2023-01-10"))

	b, err := json.Marshal(lot)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"wash", "washAdjust", "source"} {
		if strings.Contains(string(b), `"`+key+`"`) {
			t.Errorf("marshal includes default %q field: %s", key, b)
		}
	}
}

func TestLotsRoundTrip(t *testing.T) {
	adjusted := lotOf("B", "main", "AAPL", Q(50), USD(220.2), on("2023-11-15"))
	adjusted.Wash = WashSaleAdjusted
	adjusted.WashAdjust = USD(3010)
	lots := Lots{
		lotOf("l1", "main", "AAPL", Q(100), USD(150.1), on("2023-01-10")),
		adjusted,
	}
	lots[0].Source = "b1"

	var buf bytes.Buffer
	if err := EncodeLots(&buf, lots); err != nil {
		t.Fatal(err)
	}
	back, err := DecodeLots(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 {
		t.Fatalf("decoded %d lots, want 2", len(back))
	}
	for i := range lots {
		got, want := back[i], lots[i]
		if got.ID != want.ID || got.Portfolio != want.Portfolio || got.Symbol != want.Symbol {
			t.Errorf("lot %d identity mismatch: %+v", i, got)
		}
		if !got.Quantity.Equal(want.Quantity) || !got.CostPerUnit.Equal(want.CostPerUnit) {
			t.Errorf("lot %d amounts mismatch: %+v", i, got)
		}
		if got.Currency() != "USD" {
			t.Errorf("lot %d currency = %q, want USD", i, got.Currency())
		}
		if got.Acquired != want.Acquired || got.Wash != want.Wash {
			t.Errorf("lot %d date or status mismatch: %+v", i, got)
		}
		if !got.WashAdjust.Equal(want.WashAdjust) {
			t.Errorf("lot %d adjustment = %s, want %s", i, got.WashAdjust, want.WashAdjust)
		}
	}
}

func TestTransactionsRoundTrip(t *testing.T) {
	settled := NewSell("s1", "main", "AAPL", Q(75), USD(170), USD(7.5), on("2023-06-01"))
	settled.Settlement = on("2023-06-03")
	txs := []Transaction{
		NewBuy("b1", "main", "AAPL", Q(100), USD(150), USD(10), on("2023-01-10")),
		settled,
	}

	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, txs); err != nil {
		t.Fatal(err)
	}
	back, err := DecodeTransactions(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 {
		t.Fatalf("decoded %d transactions, want 2", len(back))
	}
	if back[0].Kind != Buy || back[1].Kind != Sell {
		t.Errorf("kinds = %s, %s", back[0].Kind, back[1].Kind)
	}
	// omitted settlement falls back to the trade date
	if back[0].SettlesOn() != on("2023-01-10") {
		t.Errorf("b1 settles on %s, want trade date", back[0].SettlesOn())
	}
	if back[1].Settlement != on("2023-06-03") {
		t.Errorf("s1 settlement = %s, want 2023-06-03", back[1].Settlement)
	}
	if !back[1].Fees.Equal(USD(7.5)) || back[1].Fees.Currency() != "USD" {
		t.Errorf("s1 fees = %s %s", back[1].Fees, back[1].Fees.Currency())
	}
}

func TestDecodeLotsSkipsEmptyLines(t *testing.T) {
	in := `{"id":"l1","portfolio":"main","symbol":"AAPL","quantity":100,"costPerUnit":150.1,"totalCost":15010,"currency":"USD","acquired":"2023-01-10"}

`
	lots, err := DecodeLots(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(lots) != 1 {
		t.Fatalf("decoded %d lots, want 1", len(lots))
	}
	if !lots[0].TotalCost.Equal(USD(15010)) {
		t.Errorf("total = %s, want $15,010.00", lots[0].TotalCost)
	}
}

func TestDecodeLotsRejectsGarbage(t *testing.T) {
	if _, err := DecodeLots(strings.NewReader("not json\n")); err == nil {
		t.Error("expected error on malformed line")
	}
	if _, err := DecodeLots(strings.NewReader(`{"id":"l1","wash":"bogus"}` + "\n")); err == nil {
		t.Error("expected error on unknown wash status")
	}
}

func TestJSONObjectWriter(t *testing.T) {
	var w jsonObjectWriter
	w.Append("a", 1).Optional("b", "").Optional("c", "x").Append("d", "y")
	b, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":1,"c":"x","d":"y"}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}

	var empty jsonObjectWriter
	b, err = empty.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{}" {
		t.Errorf("empty writer = %s, want {}", b)
	}
}
