package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/log"
)

const systemPrompt = `You are a municipal budget analyst chatbot.

SOURCE OF TRUTH
- Numeric answers MUST come from API calls that wrap database views:
  - v_year_totals (sum per year)
  - v_year_yoy (YoY deltas per year)
  - v_category_totals (sum per category within a year)
  - v_line_items (sum per line item per category/year)
  - v_category_shares (percent of year total per category)
- Never invent numbers. The host app runs the queries and formats the answer.

OUTPUT CONTRACT
- ALWAYS return a single JSON object matching one of the schemas below.
- Do not include prose outside JSON.

ALLOWED YEARS: ["FY24","FY25","FY26"]
ALLOWED ACTIONS:
1) {"action":"year_total","year":<Year>}
2) {"action":"yoy_difference","year_from":<Year>,"year_to":<Year>}
3) {"action":"yoy_all"}
4) {"action":"category_rank","year":<Year>,"top_n":<int default=10>}
5) {"action":"category_share","year":<Year>,"category":<string>}
6) {"action":"line_item_total","year":<Year>,"category":<string>,"line_item":<string>}
7) {"action":"help","question":<string>} -- if the request is unclear, ask ONE precise follow-up

GUARDRAILS
- If a required field is missing (e.g. no year), fill the smallest reasonable default:
  for unqualified totals/rankings, default to the latest complete year "FY25".
- If the user's category/line item doesn't exist or is ambiguous, return a help action.
- Normalize simple typos ("fy 25" -> "FY25"), but never hallucinate categories.
- No free-form math.`

const fewShotExamples = `USER: What is the total budget for FY25?
ASSISTANT:
{"action":"year_total","year":"FY25"}

USER: How much did the budget change from FY24 to FY25?
ASSISTANT:
{"action":"yoy_difference","year_from":"FY24","year_to":"FY25"}

USER: What was the budget difference every year?
ASSISTANT:
{"action":"yoy_all"}

USER: Which category got the most in FY25?
ASSISTANT:
{"action":"category_rank","year":"FY25","top_n":5}

USER: What percentage of FY25 came from Taxes?
ASSISTANT:
{"action":"category_share","year":"FY25","category":"TAXES"}

USER: How much did Administration spend on Payroll Taxes in FY24?
ASSISTANT:
{"action":"line_item_total","year":"FY24","category":"ADMINISTRATION","line_item":"Payroll Taxes"}`

// Gemini classifies questions with a Gemini model. Any failure (API error,
// malformed JSON, invalid intent) falls back to the rule-based classifier so
// a dead model never makes the assistant stop answering.
type Gemini struct {
	client   *genai.Client
	model    string
	fallback Rules
	logger   *log.Logger
}

var _ Classifier = (*Gemini)(nil)

func NewGemini(ctx context.Context, apiKey, model string, logger *log.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
		logger: logger.WithComponent(log.ComponentClassifier),
	}, nil
}

func (g *Gemini) Classify(ctx context.Context, question string) (core.Intent, error) {
	intent, err := g.classify(ctx, question)
	if err != nil {
		g.logger.WarnContext(ctx, "Gemini classification failed, using rules",
			log.FieldError, err,
			log.FieldQuestion, question)
		return g.fallback.Classify(ctx, question)
	}
	return intent, nil
}

func (g *Gemini) classify(ctx context.Context, question string) (core.Intent, error) {
	prompt := fewShotExamples + "\n\nUSER: " + question + "\nASSISTANT:"

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		})
	if err != nil {
		return core.Intent{}, fmt.Errorf("generate content: %w", err)
	}

	raw := strings.TrimSpace(resp.Text())
	// Models occasionally fence the JSON despite the MIME type.
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var intent core.Intent
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &intent); err != nil {
		return core.Intent{}, fmt.Errorf("parse intent %q: %w", raw, err)
	}

	if intent.Action == core.ActionCategoryRank && intent.TopN == 0 {
		intent.TopN = core.DefaultTopN
	}
	if err := intent.Validate(); err != nil {
		return core.Intent{}, fmt.Errorf("invalid intent: %w", err)
	}

	g.logger.DebugContext(ctx, "Question classified",
		log.FieldQuestion, question,
		log.FieldAction, string(intent.Action))
	return intent, nil
}
