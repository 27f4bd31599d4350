package agent

import (
	"context"
	"fmt"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/date"
	"github.com/etnz/capgrowth/docs"
	"github.com/etnz/capgrowth/renderer"
	"google.golang.org/genai"
)

// Workbench is what the analyst works on.
type Workbench struct {
	Indexes  map[capgrowth.IndexType]capgrowth.IndexSeries
	Currency string
	Growth   *capgrowth.Growth // analysis under discussion
}

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: genai.NewContentFromText(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user bought a property and wants to understand how its value evolved, according to
			a published house price index. Never invent figures: ask the Analyst for them.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
		`, genai.RoleUser),
		},
		Library: NewLibrary(experts),
	}
}

// NewEconomist returns an expert in property markets grounded with Google Search.
func NewEconomist() *Expert {
	return &Expert{
		Name: "Economist",
		Description: `This is an economist specialized in residential property markets.
		Ask the Economist about the history of a property market, interest rates, inflation
		and the events that can explain the variations of a price index.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: genai.NewContentFromText(`
			You are an economist expert in residential property markets. You leverage Google Search
			to ground your assertions, and you relate market events to the user's request.
			`, genai.RoleUser),
		},
	}
}

// NewAnalyst returns the expert computing capital growth on wb.
func NewAnalyst(wb *Workbench) *Expert {
	lib := []Function{Reconstruct(wb)}

	instruction := `
	You are the Analyst. You compute the capital growth of a property purchase by compounding
	the percentage changes of a house price index forward and backward from the purchase.
	Use the Tools to compute alternative scenarios, never estimate them yourself.

	` + must(docs.GetTopic("growth")) + "\n" + must(docs.GetTopic("cagr"))
	if wb.Growth != nil {
		instruction += "\n\nThe user's current analysis is:\n\n" + renderer.GrowthMarkdown(wb.Growth, renderer.Options{Currency: wb.Currency})
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It knows the user's purchase and the house price indexes.
		It computes the value of a purchase at any date covered by an index, and the compound annual growth rate.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Reconstruct returns the function analysing an alternative purchase.
func Reconstruct(wb *Workbench) *Func {
	const name = "reconstruct"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Reconstructs the value of a purchase over the whole house price index and computes its compound annual growth rate.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"index": {
						Type:        genai.TypeString,
						Enum:        []string{string(capgrowth.Real), string(capgrowth.Nominal)},
						Description: "The index variant, the current analysis' one by default.",
					},
					"price": {
						Type:        genai.TypeNumber,
						Description: "The purchase price, at least 1.",
					},
					"purchased": {
						Type:        genai.TypeString,
						Description: "The purchase date in YYYY-MM-DD format.",
					},
					"raw": {
						Type:        genai.TypeBoolean,
						Description: "Include the value at every index date.",
					},
				},
				Required: []string{"price", "purchased"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the purchase's capital growth.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			g, err := reconstruct(wb, args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			raw, _ := args["raw"].(bool)
			report := renderer.GrowthMarkdown(g, renderer.Options{Currency: wb.Currency, Raw: raw})
			return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": report}}
		},
	}
}

func reconstruct(wb *Workbench, args map[string]any) (*capgrowth.Growth, error) {
	typ := capgrowth.Real
	if wb.Growth != nil {
		typ = wb.Growth.Type
	}
	if s, ok := args["index"].(string); ok && s != "" {
		var err error
		if typ, err = capgrowth.ParseIndexType(s); err != nil {
			return nil, err
		}
	}
	index, ok := wb.Indexes[typ]
	if !ok {
		return nil, fmt.Errorf("%s index is not loaded", typ)
	}

	price, ok := args["price"].(float64)
	if !ok || price < 1 {
		return nil, fmt.Errorf("argument 'price' must be a number of at least 1, got %v", args["price"])
	}
	s, ok := args["purchased"].(string)
	if !ok {
		return nil, fmt.Errorf("argument 'purchased' is not a string as expected but %T", args["purchased"])
	}
	on, err := date.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("argument 'purchased' must be a valid date: %w", err)
	}
	return capgrowth.Analyze(index, capgrowth.Anchor{Date: on, Value: price})
}
