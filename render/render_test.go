package render

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/greatmindsinside/taxlots"
)

func USD(v float64) taxlots.Money { return taxlots.M(v, "USD") }

func on(s string) taxlots.Date { return taxlots.MustParse(s) }

func lot(id string, q taxlots.Quantity, perUnit taxlots.Money, acquired taxlots.Date) taxlots.Lot {
	return taxlots.Lot{ID: id, Portfolio: "main", Symbol: "AAPL", Quantity: q,
		CostPerUnit: perUnit, TotalCost: perUnit.Mul(q), Acquired: acquired}
}

// headings parses markdown and returns the text of every heading, to check
// report structure rather than exact byte output.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var out []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var b strings.Builder
			for i := 0; i < h.Lines().Len(); i++ {
				line := h.Lines().At(i)
				b.Write(line.Value(source))
			}
			out = append(out, strings.TrimSpace(b.String()))
		}
		return ast.WalkContinue, nil
	})
	return out
}

func TestLotsMarkdown(t *testing.T) {
	lots := taxlots.Lots{
		lot("l1", taxlots.Q(100), USD(150.10), on("2023-01-10")),
		lot("l2", taxlots.Q(0), USD(180), on("2023-03-10")),
	}
	md := LotsMarkdown(lots, on("2023-11-01"))

	hs := headings(t, md)
	if len(hs) != 1 || !strings.Contains(hs[0], "2023-11-01") {
		t.Errorf("headings = %v", hs)
	}
	if !strings.Contains(md, "| l1 |") {
		t.Error("open lot missing from table")
	}
	if !strings.Contains(md, "closed") {
		t.Error("closed lot not labeled")
	}
	// open lots render before closed ones
	if strings.Index(md, "| l1 |") > strings.Index(md, "| l2 |") {
		t.Error("closed lot rendered before open lot")
	}
}

func TestAllocationsMarkdownWithWashSale(t *testing.T) {
	l := taxlots.NewLedger(taxlots.Lots{
		lot("A", taxlots.Q(100), USD(180), on("2023-10-01")),
		lot("B", taxlots.Q(50), USD(160), on("2023-11-15")),
	})
	sell := taxlots.NewSell("s1", "main", "AAPL", taxlots.Q(100), USD(150), USD(10), on("2023-11-01"))
	r, err := l.Process(sell, taxlots.FIFO)
	if err != nil {
		t.Fatal(err)
	}

	md := AllocationsMarkdown(r)
	hs := headings(t, md)
	if len(hs) != 2 {
		t.Fatalf("headings = %v, want disposal title and wash sale section", hs)
	}
	if !strings.Contains(hs[1], "Wash Sale") {
		t.Errorf("second heading = %q", hs[1])
	}
	if !strings.Contains(md, "(wash)") {
		t.Error("disallowed allocation not marked in the table")
	}
	if !strings.Contains(md, "B") {
		t.Error("replacement lot not named")
	}
}

func TestAllocationsMarkdownCleanGain(t *testing.T) {
	l := taxlots.NewLedger(taxlots.Lots{
		lot("l1", taxlots.Q(100), USD(150), on("2023-01-10")),
	})
	sell := taxlots.NewSell("s1", "main", "AAPL", taxlots.Q(75), USD(170), USD(0), on("2023-06-01"))
	r, err := l.Process(sell, taxlots.FIFO)
	if err != nil {
		t.Fatal(err)
	}

	md := AllocationsMarkdown(r)
	if strings.Contains(md, "Wash Sale") {
		t.Error("clean gain rendered a wash-sale section")
	}
	if !strings.Contains(md, "Total") {
		t.Error("missing total row")
	}
}

func TestUnrealizedMarkdown(t *testing.T) {
	p := taxlots.DefaultPolicy()
	lots := taxlots.Lots{
		lot("old", taxlots.Q(100), USD(150), on("2022-06-01")),
		lot("new", taxlots.Q(50), USD(180), on("2023-09-01")),
	}
	report := p.Unrealized(lots, "AAPL", USD(170), on("2023-11-01"))

	md := UnrealizedMarkdown(report)
	hs := headings(t, md)
	if len(hs) != 2 || !strings.Contains(hs[1], "Summary") {
		t.Errorf("headings = %v", hs)
	}
	if !strings.Contains(md, "| old |") || !strings.Contains(md, "| new |") {
		t.Error("lots missing from table")
	}
	if !strings.Contains(md, "Short-term") || !strings.Contains(md, "Long-term") {
		t.Error("summary buckets missing")
	}
}

func TestRecommendationsMarkdown(t *testing.T) {
	p := taxlots.DefaultPolicy()
	lots := taxlots.Lots{lot("l1", taxlots.Q(100), USD(180), on("2023-09-01"))}
	recs := p.Advise(lots, "AAPL", USD(150), on("2023-11-01"))

	md := RecommendationsMarkdown(recs)
	hs := headings(t, md)
	if len(hs) != 2 || !strings.Contains(hs[1], "harvest-loss") {
		t.Errorf("headings = %v", hs)
	}
	if !strings.Contains(md, "Steps:") || !strings.Contains(md, "Risks:") {
		t.Error("steps or risks missing")
	}

	empty := RecommendationsMarkdown(nil)
	if !strings.Contains(empty, "No opportunities") {
		t.Error("empty advice not reported")
	}
}
