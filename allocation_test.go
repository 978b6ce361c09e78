package taxlots

import (
	"errors"
	"testing"
)

// three lots with distinct dates and costs so every method yields a
// different consumption order.
func methodLots() Lots {
	return Lots{
		lotOf("a", "main", "AAPL", Q(10), USD(150), on("2023-01-10")),
		lotOf("b", "main", "AAPL", Q(10), USD(180), on("2023-03-10")),
		lotOf("c", "main", "AAPL", Q(10), USD(120), on("2023-05-10")),
	}
}

func TestOrderOpen(t *testing.T) {
	lots := methodLots()
	tests := []struct {
		method Method
		want   []int
	}{
		{FIFO, []int{0, 1, 2}},
		{LIFO, []int{2, 1, 0}},
		{HIFO, []int{1, 0, 2}},
		{LOFO, []int{2, 0, 1}},
	}
	for _, tt := range tests {
		got, err := orderOpen(lots, "AAPL", tt.method, nil)
		if err != nil {
			t.Fatalf("%s: %v", tt.method, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%s: order %v, want %v", tt.method, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: order %v, want %v", tt.method, got, tt.want)
				break
			}
		}
	}
}

func TestOrderOpenSkipsClosedAndOtherSymbols(t *testing.T) {
	lots := methodLots()
	lots[1].Quantity = Q(0) // closed
	lots = append(lots, lotOf("d", "main", "MSFT", Q(10), USD(300), on("2023-02-01")))

	got, err := orderOpen(lots, "AAPL", FIFO, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("order = %v, want [0 2]", got)
	}
}

func TestOrderOpenTiesAreStable(t *testing.T) {
	// same acquisition date: FIFO must keep snapshot order.
	lots := Lots{
		lotOf("a", "main", "AAPL", Q(10), USD(150), on("2023-01-10")),
		lotOf("b", "main", "AAPL", Q(10), USD(160), on("2023-01-10")),
	}
	got, err := orderOpen(lots, "AAPL", FIFO, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0 || got[1] != 1 {
		t.Errorf("order = %v, want [0 1]", got)
	}
}

func TestOrderSpecific(t *testing.T) {
	lots := methodLots()

	got, err := orderOpen(lots, "AAPL", Specific, []string{"c", "a"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("order = %v, want [2 0]", got)
	}

	if _, err := orderOpen(lots, "AAPL", Specific, []string{"nope"}); err == nil {
		t.Error("unknown lot id: expected error")
	}

	if _, err := orderOpen(lots, "AAPL", Specific, []string{"a", "a"}); err == nil {
		t.Error("duplicate lot id: expected error")
	}

	lots = append(lots, lotOf("m", "main", "MSFT", Q(10), USD(300), on("2023-02-01")))
	if _, err := orderOpen(lots, "AAPL", Specific, []string{"m"}); err == nil {
		t.Error("wrong symbol lot: expected error")
	}

	lots[0].Quantity = Q(0)
	if _, err := orderOpen(lots, "AAPL", Specific, []string{"a"}); err == nil {
		t.Error("closed lot: expected error")
	}
}

func TestAllocateFIFO(t *testing.T) {
	// A single lot carrying amortized acquisition fees: 100 units at
	// $150.10 per unit. Selling 75 at $170 with a $7.50 fee realizes
	// $1,485.00 and leaves 25 units.
	working := Lots{lotOf("l1", "main", "AAPL", Q(100), USD(150.10), on("2023-01-10"))}
	tx := NewSell("s1", "main", "AAPL", Q(75), USD(170), USD(7.50), on("2023-06-01"))

	allocations, err := allocate(tx, working, FIFO, nil, DefaultPolicy())
	if err != nil {
		t.Fatal(err)
	}
	if len(allocations) != 1 {
		t.Fatalf("got %d allocations, want 1", len(allocations))
	}
	a := allocations[0]
	if !a.Gain.Equal(USD(1485)) {
		t.Errorf("gain = %s, want $1,485.00", a.Gain)
	}
	if !a.Quantity.Equal(Q(75)) {
		t.Errorf("quantity = %s, want 75", a.Quantity)
	}
	if a.HoldingDays != 142 {
		t.Errorf("holding days = %d, want 142", a.HoldingDays)
	}
	if a.LongTerm {
		t.Error("142 days classified long-term")
	}
	if !working[0].Quantity.Equal(Q(25)) {
		t.Errorf("remaining quantity = %s, want 25", working[0].Quantity)
	}
	if !working[0].TotalCost.Equal(USD(3752.50)) {
		t.Errorf("remaining basis = %s, want $3,752.50", working[0].TotalCost)
	}
}

func TestAllocateHIFOSpansLots(t *testing.T) {
	// 125 units across two lots: HIFO drains the $160 lot entirely, then
	// takes 75 units from the $150 lot.
	working := Lots{
		lotOf("l1", "main", "AAPL", Q(100), USD(150), on("2023-01-10")),
		lotOf("l2", "main", "AAPL", Q(50), USD(160), on("2023-03-10")),
	}
	tx := NewSell("s1", "main", "AAPL", Q(125), USD(170), USD(0), on("2023-06-01"))

	allocations, err := allocate(tx, working, HIFO, nil, DefaultPolicy())
	if err != nil {
		t.Fatal(err)
	}
	if len(allocations) != 2 {
		t.Fatalf("got %d allocations, want 2", len(allocations))
	}
	if allocations[0].LotID != "l2" || !allocations[0].Quantity.Equal(Q(50)) {
		t.Errorf("first allocation = %s for %s, want 50 from l2", allocations[0].Quantity, allocations[0].LotID)
	}
	if allocations[1].LotID != "l1" || !allocations[1].Quantity.Equal(Q(75)) {
		t.Errorf("second allocation = %s for %s, want 75 from l1", allocations[1].Quantity, allocations[1].LotID)
	}
	if !allocations[0].Gain.Equal(USD(500)) {
		t.Errorf("l2 gain = %s, want $500.00", allocations[0].Gain)
	}
	if !allocations[1].Gain.Equal(USD(1500)) {
		t.Errorf("l1 gain = %s, want $1,500.00", allocations[1].Gain)
	}
	if !working[1].Quantity.IsZero() {
		t.Errorf("l2 still open with %s units", working[1].Quantity)
	}
	if !working[0].Quantity.Equal(Q(25)) {
		t.Errorf("l1 remaining = %s, want 25", working[0].Quantity)
	}
}

func TestAllocateProratesFees(t *testing.T) {
	working := Lots{
		lotOf("l1", "main", "AAPL", Q(60), USD(150), on("2023-01-10")),
		lotOf("l2", "main", "AAPL", Q(40), USD(150), on("2023-03-10")),
	}
	tx := NewSell("s1", "main", "AAPL", Q(100), USD(160), USD(10), on("2023-06-01"))

	allocations, err := allocate(tx, working, FIFO, nil, DefaultPolicy())
	if err != nil {
		t.Fatal(err)
	}
	// 60% and 40% of the $10 fee.
	if !allocations[0].Gain.Equal(USD(594)) {
		t.Errorf("l1 gain = %s, want $594.00", allocations[0].Gain)
	}
	if !allocations[1].Gain.Equal(USD(396)) {
		t.Errorf("l2 gain = %s, want $396.00", allocations[1].Gain)
	}
}

func TestAllocateInsufficient(t *testing.T) {
	working := Lots{lotOf("l1", "main", "AAPL", Q(10), USD(150), on("2023-01-10"))}
	tx := NewSell("s1", "main", "AAPL", Q(25), USD(170), USD(0), on("2023-06-01"))

	_, err := allocate(tx, working, FIFO, nil, DefaultPolicy())
	var ierr *InsufficientLotsError
	if !errors.As(err, &ierr) {
		t.Fatalf("error = %v, want *InsufficientLotsError", err)
	}
	if !ierr.Shortfall().Equal(Q(15)) {
		t.Errorf("shortfall = %s, want 15", ierr.Shortfall())
	}
	if !working[0].Quantity.Equal(Q(10)) {
		t.Error("failed allocation mutated the snapshot")
	}
}
