package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/greatmindsinside/taxlots"
	"github.com/greatmindsinside/taxlots/render"
)

const model = "gemini-2.5-pro"

// NewAccountant creates the expert in charge of the user's lot ledger. It
// answers from the snapshot through function tools and never mutates it.
func NewAccountant(ledger *taxlots.Ledger, prices map[string]taxlots.Money, asOf taxlots.Date) *Expert {
	lib := accountantFunctions(ledger, prices, asOf)

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's tax lots.
		He can compute holdings, unrealized gains, and tax optimization opportunities.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's tax lots.
				You know how to use the Tools to extract relevant information about the
				user's positions, their cost basis, holding periods, unrealized gains,
				and tax optimization opportunities such as loss harvesting.
				Answers come from the tools; never invent figures. Pardon the user's
				approximative language and figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// accountantFunctions exposes read-only views of the ledger as tools.
func accountantFunctions(ledger *taxlots.Ledger, prices map[string]taxlots.Money, asOf taxlots.Date) []Function {
	symbolParam := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"symbol": {
				Type:        genai.TypeString,
				Description: "The security symbol, e.g. AAPL.",
			},
		},
		Required: []string{"symbol"},
	}

	priceOf := func(symbol string) (taxlots.Money, error) {
		price, ok := prices[symbol]
		if !ok {
			return taxlots.Money{}, fmt.Errorf("no price known for %q", symbol)
		}
		return price, nil
	}

	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "list_lots",
				Description: "List every tax lot with quantity, cost basis, acquisition date and wash-sale status.",
				Parameters:  &genai.Schema{Type: genai.TypeObject},
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return respond(id, "list_lots", render.LotsMarkdown(ledger.Lots(), asOf), nil)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "unrealized_gains",
				Description: "Compute the unrealized gains of a symbol, bucketed short-term and long-term.",
				Parameters:  symbolParam,
			},
			Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
				symbol, _ := args["symbol"].(string)
				price, err := priceOf(symbol)
				if err != nil {
					return respond(id, "unrealized_gains", "", err)
				}
				report := ledger.Policy.Unrealized(ledger.Lots(), symbol, price, asOf)
				return respond(id, "unrealized_gains", render.UnrealizedMarkdown(report), nil)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "tax_optimization",
				Description: "Derive tax optimization recommendations for a symbol: loss harvesting and long-term deferral.",
				Parameters:  symbolParam,
			},
			Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
				symbol, _ := args["symbol"].(string)
				price, err := priceOf(symbol)
				if err != nil {
					return respond(id, "tax_optimization", "", err)
				}
				recs := ledger.Policy.Advise(ledger.Lots(), symbol, price, asOf)
				return respond(id, "tax_optimization", render.RecommendationsMarkdown(recs), nil)
			},
		},
	}
}

func respond(id, name, output string, err error) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: name}
	if err != nil {
		fresp.Response = map[string]any{"error": err.Error()}
		return fresp
	}
	fresp.Response = map[string]any{"output": output}
	return fresp
}
