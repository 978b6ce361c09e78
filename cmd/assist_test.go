package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPrices(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prices.json")
	if err := os.WriteFile(file, []byte(`{"AAPL":170.25,"MSFT":410}`), 0644); err != nil {
		t.Fatal(err)
	}

	c := &assistCmd{prices: file, currency: "USD"}
	prices, err := c.loadPrices()
	if err != nil {
		t.Fatal(err)
	}
	if len(prices) != 2 {
		t.Fatalf("got %d prices, want 2", len(prices))
	}
	if got := prices["AAPL"]; got.Currency() != "USD" || got.AsFloat() != 170.25 {
		t.Errorf("AAPL = %s %s", got, got.Currency())
	}
}

func TestLoadPricesMissingFileIsEmpty(t *testing.T) {
	c := &assistCmd{}
	prices, err := c.loadPrices()
	if err != nil || prices != nil {
		t.Errorf("no file: got %v, %v", prices, err)
	}
}
