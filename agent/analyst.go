package agent

import (
	"context"
	"fmt"

	drip "github.com/dripsim/drip"
	"github.com/dripsim/drip/docs"
	"github.com/dripsim/drip/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// NewAnalyst creates the dividend analyst expert. It can run reinvestment
// simulations against live market data and look up the user documentation.
func NewAnalyst(provider drip.MarketDataProvider) *Expert {
	lib := []Function{newRunSimulation(provider), topicLookup}

	return &Expert{
		Name: "Analyst",
		Description: `This is a dividend analyst. He can simulate dividend
		reinvestment for any listed ticker over a date range, and explain
		the assumptions behind the forecast.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a dividend reinvestment analyst.
				Use the run_simulation tool to compute what happens when all dividends
				of a ticker are reinvested into whole shares of the same ticker.
				The tool returns a markdown report, summarize it for the user and answer
				follow-up questions about it. The report is written in Korean, answer in
				the user's language.
				Use the get_topic tool when the user asks how the simulator works,
				what the cadence inference does, or what the CSV export contains.
				Never invent figures: every number you quote must come from a tool call.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func newRunSimulation(provider drip.MarketDataProvider) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "run_simulation",
			Description: `run_simulation runs a dividend reinvestment simulation for a ticker.

			Every dividend in the range is reinvested into whole shares at the closing
			price of the payment date. Dates past today are forecast from the inferred
			payment cadence.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ticker": {
						Type:        genai.TypeString,
						Description: "The security ticker, e.g. 'AAPL' or '005930.KS'.",
					},
					"start": {
						Type:        genai.TypeString,
						Description: "Start of the range, YYYY-MM-DD.",
					},
					"end": {
						Type:        genai.TypeString,
						Description: "End of the range, YYYY-MM-DD. May be in the future.",
					},
					"shares": {
						Type:        genai.TypeInteger,
						Description: "Initial number of shares held. Defaults to 100.",
					},
				},
				Required: []string{"ticker", "start", "end"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the simulation: summary, forecast assumptions, and the full reinvestment ledger.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := runSimulation(provider, args)
			if err != nil {
				return &genai.FunctionResponse{
					ID:   id,
					Name: "run_simulation",
					Response: map[string]any{
						"error": err.Error(),
					},
				}
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "run_simulation",
				Response: map[string]any{
					"output": report,
				},
			}
		},
	}
}

func runSimulation(provider drip.MarketDataProvider, args map[string]any) (string, error) {
	ticker, err := stringArg(args, "ticker")
	if err != nil {
		return "", err
	}
	start, err := dateArg(args, "start")
	if err != nil {
		return "", err
	}
	end, err := dateArg(args, "end")
	if err != nil {
		return "", err
	}

	shares := int64(100)
	if v, ok := args["shares"]; ok {
		f, ok := v.(float64)
		if !ok {
			return "", fmt.Errorf("argument 'shares' is not a number as expected but %T", v)
		}
		shares = int64(f)
	}

	sim := drip.Simulation{
		Ticker:        ticker,
		Range:         drip.Range{From: start, To: end},
		InitialShares: shares,
	}
	result, err := sim.Run(provider)
	if err != nil {
		return "", err
	}
	return renderer.SimulationMarkdown(result), nil
}

var topicLookup = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "get_topic",
		Description: `get_topic returns a documentation topic about the simulator.

		Available topics: guide, cadence, export.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"topic": {
					Type:        genai.TypeString,
					Description: "The topic name, e.g. 'cadence'.",
				},
			},
			Required: []string{"topic"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The markdown content of the topic.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		topic, err := stringArg(args, "topic")
		if err == nil {
			var content string
			content, err = docs.GetTopic(topic)
			if err == nil {
				return &genai.FunctionResponse{
					ID:   id,
					Name: "get_topic",
					Response: map[string]any{
						"output": content,
					},
				}
			}
		}
		return &genai.FunctionResponse{
			ID:   id,
			Name: "get_topic",
			Response: map[string]any{
				"error": err.Error(),
			},
		}
	},
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", fmt.Errorf("missing argument %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, nil
}

func dateArg(args map[string]any, name string) (drip.Date, error) {
	s, err := stringArg(args, name)
	if err != nil {
		return drip.Date{}, err
	}
	d, err := drip.ParseDate(s)
	if err != nil {
		return drip.Date{}, fmt.Errorf("argument %q must be a valid date got %q: %w", name, s, err)
	}
	return d, nil
}
