package usecase

import (
	"context"
	"fmt"
	"strings"

	"horticulture-assistant/internal/knowledge"
	"horticulture-assistant/pkg/qdrant"
)

const (
	defaultTopK = 3
	focusedTopK = 1

	noInformationMessage = "I don't have specific information about that. Let me help you with something else."
)

// Answer retrieves knowledge base documents for the question and shapes a
// conversational reply. When both a product and a category are known the
// reply is a single concise answer; otherwise it lists the top matches.
func (uc *implUseCase) Answer(ctx context.Context, input knowledge.AnswerInput) (knowledge.Answer, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return knowledge.Answer{}, knowledge.ErrEmptyQuestion
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = knowledge.InferCategory(question)
	}
	product := strings.TrimSpace(input.ProductName)
	if product == "" {
		product = knowledge.InferProductName(question, input.CatalogNames)
	}

	limit := defaultTopK
	if product != "" && isFocusedCategory(category) {
		limit = focusedTopK
	}

	vector, err := uc.embedder.EmbedContent(ctx, question)
	if err != nil {
		return knowledge.Answer{}, fmt.Errorf("embed question: %w", err)
	}

	resp, err := uc.store.SearchPoints(ctx, uc.cfg.Collection, qdrant.SearchRequest{
		Vector:      vector,
		Limit:       limit,
		WithPayload: true,
		Filter:      buildFilter(category, product),
	})
	if err != nil {
		return knowledge.Answer{}, err
	}

	results := make([]knowledge.Result, 0, len(resp.Result))
	for _, p := range resp.Result {
		results = append(results, knowledge.Result{
			Content:     payloadString(p.Payload, "text"),
			ProductName: payloadString(p.Payload, "product_name"),
			Category:    payloadString(p.Payload, "category"),
			Score:       p.Score,
		})
	}

	answer := knowledge.Answer{
		Results:     results,
		Category:    category,
		ProductName: product,
	}
	if len(results) == 0 {
		answer.Message = noInformationMessage
		return answer, nil
	}

	if product != "" && category != "" {
		answer.Message = focusedMessage(results[0].Content, product)
		answer.Results = results[:1]
		return answer, nil
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("- %s [%s]: %s", r.ProductName, r.Category, r.Content))
	}
	answer.Message = "Based on product knowledge:\n" + strings.Join(lines, "\n")
	return answer, nil
}

func isFocusedCategory(category string) bool {
	switch category {
	case knowledge.CategoryStorage, knowledge.CategoryNutrition, knowledge.CategorySelection, knowledge.CategorySeasonality:
		return true
	}
	return false
}

// focusedMessage strips a "<Product> <category>:" prefix from KB content so
// the direct answer reads naturally.
func focusedMessage(content, product string) string {
	prefix, rest, found := strings.Cut(content, ":")
	if found && strings.Contains(strings.ToLower(prefix), strings.ToLower(product)) {
		return strings.TrimSpace(rest)
	}
	return content
}

func buildFilter(category, product string) map[string]interface{} {
	var must []map[string]interface{}
	if category != "" {
		must = append(must, map[string]interface{}{
			"key":   "category",
			"match": map[string]interface{}{"value": category},
		})
	}
	if product != "" {
		must = append(must, map[string]interface{}{
			"key":   "product_name",
			"match": map[string]interface{}{"value": product},
		})
	}
	if must == nil {
		return nil
	}
	return map[string]interface{}{"must": must}
}

func payloadString(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
