package taxlots

// test helpers to keep the tables below readable.

func USD(v float64) Money { return M(v, "USD") }
func EUR(v float64) Money { return M(v, "EUR") }

func on(s string) Date { return MustParse(s) }

// lotOf builds an open lot with the basis derived from the per-unit cost.
func lotOf(id, portfolio, symbol string, quantity Quantity, perUnit Money, acquired Date) Lot {
	return Lot{
		ID:          id,
		Portfolio:   portfolio,
		Symbol:      symbol,
		Quantity:    quantity,
		CostPerUnit: perUnit,
		TotalCost:   perUnit.Mul(quantity),
		Acquired:    acquired,
	}
}
