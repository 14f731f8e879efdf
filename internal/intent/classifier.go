package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"horticulture-assistant/pkg/llmprovider"
	"horticulture-assistant/pkg/log"
)

const intentClassifierLogPrefix = "intent.classifier"

// Detector classifies a user message into an intent with extracted entities.
//
//go:generate mockery --name Detector
type Detector interface {
	Detect(ctx context.Context, text string) (Detection, error)
}

// Generator is the slice of the LLM provider manager the classifier needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Classifier runs the rule chain first and falls back to an LLM for messages
// the rules cannot place. LLM failures degrade to general_chat instead of
// erroring, so a classifier outage never breaks the conversation.
type Classifier struct {
	llm Generator
	l   log.Logger
	now func() time.Time
}

var _ Detector = (*Classifier)(nil)

// NewClassifier creates a classifier backed by the given LLM generator.
func NewClassifier(llm Generator, logger log.Logger) *Classifier {
	return &Classifier{llm: llm, l: logger, now: time.Now}
}

// Detect classifies the message. The returned error is always nil; it exists
// so alternative Detector implementations can report hard failures.
func (c *Classifier) Detect(ctx context.Context, text string) (Detection, error) {
	det, matched := MatchRules(text, c.now())
	if matched {
		return det, nil
	}
	ruleEntities := det.Entities

	resp, err := c.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{{
			Role:  "user",
			Parts: []llmprovider.Part{{Text: classifierPrompt(text)}},
		}},
		Temperature: 0,
		MaxTokens:   256,
	})
	if err != nil {
		c.l.Warnf(ctx, "%v.Detect llm fallback failed: %v", intentClassifierLogPrefix, err)
		return Detection{Intent: GeneralChat, Entities: ruleEntities}, nil
	}

	parsed, ok := parseDetection(responseText(resp))
	if !ok {
		c.l.Warnf(ctx, "%v.Detect unparseable classifier output", intentClassifierLogPrefix)
		return Detection{Intent: GeneralChat, Entities: ruleEntities}, nil
	}

	return mergeEntities(parsed, ruleEntities), nil
}

func classifierPrompt(text string) string {
	names := make([]string, len(All))
	for i, in := range All {
		names[i] = string(in)
	}
	return fmt.Sprintf(`You are an intent classifier for a horticulture marketplace chatbot in Ethiopia.
Classify the user message into exactly one of these intents:
%s

Extract any entities the message contains, such as phone, name, location,
product_name, quantity_kg, price_per_unit, delivery_date, start_date, end_date.

Respond with compact JSON only, no prose and no markdown fences:
{"intent": "<one of the intents above>", "entities": {}}

User message: %q`, strings.Join(names, ", "), text)
}

// parseDetection decodes the classifier output, tolerating markdown code
// fences some models wrap JSON in.
func parseDetection(raw string) (Detection, bool) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimPrefix(raw, "json")
		if i := strings.LastIndex(raw, "```"); i >= 0 {
			raw = raw[:i]
		}
		raw = strings.TrimSpace(raw)
	}

	var det Detection
	if err := json.Unmarshal([]byte(raw), &det); err != nil {
		return Detection{}, false
	}
	if !det.Intent.Valid() {
		det.Intent = GeneralChat
	}
	if det.Entities == nil {
		det.Entities = map[string]interface{}{}
	}
	return det, true
}

// mergeEntities normalizes entity key aliases from the model and layers the
// rule-extracted entities underneath, with the model's values winning.
func mergeEntities(det Detection, ruleEntities map[string]interface{}) Detection {
	merged := map[string]interface{}{}
	for k, v := range ruleEntities {
		merged[k] = v
	}
	for k, v := range det.Entities {
		switch k {
		case "phone_number", "phoneNumber":
			k = "phone"
		case "delivery_location":
			k = "location"
		}
		merged[k] = v
	}
	det.Entities = merged
	return det
}

func responseText(resp *llmprovider.Response) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
