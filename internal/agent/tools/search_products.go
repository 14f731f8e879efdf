package tools

import (
	"context"
	"fmt"
	"strings"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
)

// SearchProductsTool searches the catalog with live availability and prices.
type SearchProductsTool struct {
	uc market.UseCase
}

// NewSearchProductsTool creates a new product search tool.
func NewSearchProductsTool(uc market.UseCase) *SearchProductsTool {
	return &SearchProductsTool{uc: uc}
}

func (t *SearchProductsTool) Name() string {
	return "search_products"
}

func (t *SearchProductsTool) Description() string {
	return "Search the product catalog by name or category. Returns availability and the lowest price per kg for each match."
}

func (t *SearchProductsTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"query": map[string]interface{}{
			"type":        "string",
			"description": "Product name or category to search for, e.g. 'tomato' or 'vegetables'",
		},
	}, "query")
}

func (t *SearchProductsTool) Execute(ctx context.Context, _ model.Scope, args map[string]interface{}) (agent.Result, error) {
	query := strings.TrimSpace(stringArg(args, "query"))
	if query == "" {
		return agent.Fail("query is required"), nil
	}

	listings, err := t.uc.SearchCatalog(ctx, query)
	if err != nil {
		return agent.Result{}, err
	}
	if len(listings) == 0 {
		return agent.OK([]interface{}{},
			fmt.Sprintf("No products found matching '%s'. Available categories: vegetables, fruits, dairy.", query)), nil
	}

	lines := make([]string, 0, len(listings))
	data := make([]map[string]interface{}, 0, len(listings))
	for _, l := range listings {
		if l.Available && l.TotalQuantityKg > 0 {
			lines = append(lines, fmt.Sprintf("%s: %.2fkg available at %.2f ETB/kg",
				l.Product.ProductName, l.TotalQuantityKg, l.MinPricePerUnit))
		} else {
			lines = append(lines, fmt.Sprintf("%s: currently no active inventory", l.Product.ProductName))
		}

		entry := map[string]interface{}{
			"product_id":            l.Product.ProductID,
			"product_name":          l.Product.ProductName,
			"available_quantity_kg": l.TotalQuantityKg,
		}
		if l.Available {
			entry["min_price_per_unit"] = l.MinPricePerUnit
		}
		data = append(data, entry)
	}

	msg := fmt.Sprintf("Found %d products:\n%s", len(listings), strings.Join(lines, "\n"))
	return agent.OK(data, msg), nil
}
