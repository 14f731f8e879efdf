package tools

import (
	"context"
	"strings"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/knowledge"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
)

// RAGQueryTool answers product knowledge questions (storage, nutrition,
// recipes, selection, seasonality) from the knowledge base.
type RAGQueryTool struct {
	knowledge knowledge.UseCase
	market    market.UseCase
}

// NewRAGQueryTool creates a new knowledge query tool.
func NewRAGQueryTool(kn knowledge.UseCase, mk market.UseCase) *RAGQueryTool {
	return &RAGQueryTool{knowledge: kn, market: mk}
}

func (t *RAGQueryTool) Name() string {
	return "rag_query"
}

func (t *RAGQueryTool) Description() string {
	return "Answer questions about product storage, nutrition, recipes, selection or seasonality from the knowledge base."
}

func (t *RAGQueryTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"query": map[string]interface{}{
			"type":        "string",
			"description": "The knowledge question",
		},
		"category": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"storage", "nutrition", "recipes", "selection", "seasonality"},
			"description": "Knowledge category, if known",
		},
		"product_name": map[string]interface{}{
			"type":        "string",
			"description": "The product the question is about, if known",
		},
	}, "query")
}

func (t *RAGQueryTool) Execute(ctx context.Context, _ model.Scope, args map[string]interface{}) (agent.Result, error) {
	query := strings.TrimSpace(stringArg(args, "query"))
	if query == "" {
		return agent.Fail("query is required"), nil
	}

	// Catalog names drive product inference; a missing catalog only widens
	// the search instead of failing the question.
	var catalogNames []string
	if products, err := t.market.ListProducts(ctx); err == nil {
		for _, p := range products {
			catalogNames = append(catalogNames, p.ProductName)
		}
	}

	answer, err := t.knowledge.Answer(ctx, knowledge.AnswerInput{
		Question:     query,
		Category:     stringArg(args, "category"),
		ProductName:  stringArg(args, "product_name"),
		CatalogNames: catalogNames,
	})
	if err != nil {
		return agent.Result{}, err
	}
	return agent.OK(answer.Results, answer.Message), nil
}
