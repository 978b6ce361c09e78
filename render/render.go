// Package render turns engine results into markdown reports.
package render

import (
	"fmt"
	"strings"

	"github.com/greatmindsinside/taxlots"
)

// LotsMarkdown renders a lot snapshot as a markdown table, open lots first.
func LotsMarkdown(lots taxlots.Lots, asOf taxlots.Date) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Lots on %s\n\n", asOf)
	fmt.Fprintln(&b, "| Lot | Symbol | Quantity | Cost/Unit | Total Cost | Acquired | Held (days) | Status |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|:---|---:|:---|")

	write := func(l taxlots.Lot) {
		status := l.Wash.String()
		if l.Wash == taxlots.NoWash && !l.Open() {
			status = "closed"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %d | %s |\n",
			l.ID, l.Symbol, l.Quantity, l.CostPerUnit, l.TotalCost,
			l.Acquired, taxlots.HoldingDays(l, asOf), status)
	}
	for _, l := range lots {
		if l.Open() {
			write(l)
		}
	}
	for _, l := range lots {
		if !l.Open() {
			write(l)
		}
	}

	return b.String()
}

// AllocationsMarkdown renders the outcome of one processed disposal.
func AllocationsMarkdown(r *taxlots.Result) string {
	var b strings.Builder
	tx := r.Transaction

	fmt.Fprintf(&b, "# Disposal %s: %s %s %s\n\n", tx.ID, tx.Kind, tx.Quantity, tx.Symbol)
	fmt.Fprintf(&b, "Settled on %s at %s per unit.\n\n", tx.SettlesOn(), tx.Price)

	fmt.Fprintln(&b, "| Lot | Quantity | Cost/Unit | Acquired | Held (days) | Term | Gain |")
	fmt.Fprintln(&b, "|:---|---:|---:|:---|---:|:---|---:|")

	total := taxlots.M(0, tx.Price.Currency())
	for _, a := range r.Allocations {
		term := "short"
		if a.LongTerm {
			term = "long"
		}
		gain := a.Gain.SignedString()
		if a.Wash {
			gain = fmt.Sprintf("%s (wash)", a.Gain.SignedString())
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s | %s |\n",
			a.LotID, a.Quantity, a.CostPerUnit, a.Acquired, a.HoldingDays, term, gain)
		total = total.Add(a.Gain)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | | **%s** |\n", total.SignedString())

	if r.WashSale != nil && r.WashSale.Triggered {
		fmt.Fprint(&b, "\n")
		fmt.Fprint(&b, WashSaleMarkdown(r.WashSale))
	}

	return b.String()
}

// WashSaleMarkdown renders a triggered wash-sale analysis.
func WashSaleMarkdown(a *taxlots.WashSaleAnalysis) string {
	var b strings.Builder

	fmt.Fprint(&b, "## Wash Sale\n\n")
	if !a.Triggered {
		fmt.Fprint(&b, "No wash sale detected.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "A loss of %s is disallowed: replacement shares were acquired inside %s.\n\n",
		a.Disallowed, a.Window)
	fmt.Fprintf(&b, "* Replacement lots: %s\n", strings.Join(a.Replacements, ", "))
	fmt.Fprintf(&b, "* Basis added to open replacements: %s\n", a.AdjustedBasis)

	return b.String()
}

// UnrealizedMarkdown renders an unrealized gains report.
func UnrealizedMarkdown(r *taxlots.UnrealizedReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Unrealized Gains for %s on %s\n\n", r.Symbol, r.AsOf)
	fmt.Fprintf(&b, "Price: %s per unit\n\n", r.Price)

	fmt.Fprintln(&b, "| Lot | Quantity | Cost/Unit | Held (days) | Term | Unrealized |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|:---|---:|")
	for _, lv := range r.Lots {
		term := "short"
		if lv.LongTerm {
			term = "long"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s |\n",
			lv.LotID, lv.Quantity, lv.CostPerUnit, lv.HoldingDays, term, lv.Unrealized.SignedString())
	}

	fmt.Fprint(&b, "\n## Summary\n\n")
	fmt.Fprintln(&b, "| Term | Unrealized |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Short-term | %s |\n", r.ShortTerm.SignedString())
	fmt.Fprintf(&b, "| Long-term | %s |\n", r.LongTerm.SignedString())
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", r.Total.SignedString())

	return b.String()
}

// RecommendationsMarkdown renders advisor recommendations, one section per
// recommendation.
func RecommendationsMarkdown(recs []taxlots.Recommendation) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Tax Optimization\n\n")
	if len(recs) == 0 {
		fmt.Fprint(&b, "No opportunities found.\n")
		return b.String()
	}

	for _, r := range recs {
		fmt.Fprintf(&b, "## %s: %s\n\n", r.Symbol, r.Strategy)
		fmt.Fprintf(&b, "%s\n\n", r.Description)
		fmt.Fprintf(&b, "Estimated savings: %s. Act before %s.\n\n", r.Savings, r.Deadline)

		fmt.Fprint(&b, "Steps:\n\n")
		for _, s := range r.Steps {
			fmt.Fprintf(&b, "1. %s\n", s)
		}
		fmt.Fprint(&b, "\nRisks:\n\n")
		for _, s := range r.Risks {
			fmt.Fprintf(&b, "* %s\n", s)
		}
		fmt.Fprint(&b, "\n")
	}

	return b.String()
}
