package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olindh/kassabok"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user keeps a plaintext double-entry ledger of his household finances,
			reconciled against his bank's csv exports. He is here primarily to understand
			where his money went and which entries still need his attention.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewBookkeeper creates the expert in charge of reading the ledger kept in
// the given data directory.
func NewBookkeeper(dataDir string) *Expert {

	lib := []Function{
		reconciliationFunc(dataDir),
		payeesFunc(dataDir),
		monthsFunc(dataDir),
	}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's ledger and
		the rows imported from the bank. He can reconcile both and report which entries are
		connected, matched, or still missing from either side.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's household ledger.
				You know how to use the Tools to extract relevant information about his spending.
				You are part of a team of experts, yours is everything about the ledger. They might ask
				you questions about it, pardon their approximative language and figure out what they meant.

				Use the available tools to get information about the ledger
				  - the reconciliation of declared entries against bank rows
				  - the list of payees
				  - the months with activity
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func reconciliationFunc(dataDir string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Reconciliation",
			Description: `Reconciliation matches the user's declared ledger entries against the rows
			imported from his bank, and lists every entry with its state: CONNECTED (declared and
			bank row share an identity), AUTO_MATCHED (linked heuristically), UNCONNECTED (declared
			only), INFERRED (bank only).`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"month": {
						Type:        genai.TypeString,
						Description: "Restrict the report to one calendar month, format YYYY-MM. All months by default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted list of every entry with its date, state, payee, amount and account.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			aggs, err := kassabok.ReadAggregations(dataDir)
			if err != nil {
				return failure(id, "Reconciliation", err)
			}
			if imonth, ok := args["month"]; ok {
				smonth, ok := imonth.(string)
				if !ok {
					return failure(id, "Reconciliation", fmt.Errorf("argument 'month' is not a string as expected but %T", imonth))
				}
				m, err := time.Parse("2006-01", smonth)
				if err != nil {
					return failure(id, "Reconciliation", fmt.Errorf("argument 'month' must look like YYYY-MM, got %q", smonth))
				}
				aggs = kassabok.FilterYearMonth(aggs, m.Year(), m.Month())
			}

			var b strings.Builder
			for _, a := range aggs {
				tag := ""
				if a.ID != nil {
					tag = fmt.Sprintf(" #%d", *a.ID)
				}
				payee := ""
				if t := a.Transaction(); t != nil {
					payee = t.Payee
				}
				fmt.Fprintf(&b, "- %s %s %q %s %s%s\n", a.Date, a.Status, payee, a.Amount, a.ObjectAccount(), tag)
			}
			return success(id, "Reconciliation", b.String())
		},
	}
}

func payeesFunc(dataDir string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Payees",
			Description: `Payees lists every payee appearing in the user's declared ledger entries.`,
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted list of payees, in first-seen order.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			payees, err := kassabok.ReadPayees(dataDir)
			if err != nil {
				return failure(id, "Payees", err)
			}
			var b strings.Builder
			for _, p := range payees {
				fmt.Fprintf(&b, "- %s\n", p)
			}
			return success(id, "Payees", b.String())
		},
	}
}

func monthsFunc(dataDir string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Months",
			Description: `Months lists every calendar month with at least one declared or imported transaction.`,
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted list of months, ascending, format YYYY-MM.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			aggs, err := kassabok.ReadAggregations(dataDir)
			if err != nil {
				return failure(id, "Months", err)
			}
			var b strings.Builder
			for _, ym := range kassabok.YearMonths(aggs) {
				fmt.Fprintf(&b, "- %04d-%02d\n", ym.Year, int(ym.Month))
			}
			return success(id, "Months", b.String())
		},
	}
}
