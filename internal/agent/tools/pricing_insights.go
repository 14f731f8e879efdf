package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
)

// PricingInsightsTool reports market price tiers and a recommended selling
// price for a product.
type PricingInsightsTool struct {
	uc market.UseCase
}

// NewPricingInsightsTool creates a new pricing insights tool.
func NewPricingInsightsTool(uc market.UseCase) *PricingInsightsTool {
	return &PricingInsightsTool{uc: uc}
}

func (t *PricingInsightsTool) Name() string {
	return "get_pricing_insights"
}

func (t *PricingInsightsTool) Description() string {
	return "Get current market prices (farm, supermarket, distribution center), the historical selling price and a recommended price for a product."
}

func (t *PricingInsightsTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"product_name": map[string]interface{}{
			"type":        "string",
			"description": "The product to price",
		},
	}, "product_name")
}

func (t *PricingInsightsTool) Execute(ctx context.Context, _ model.Scope, args map[string]interface{}) (agent.Result, error) {
	productName := strings.TrimSpace(stringArg(args, "product_name"))
	if productName == "" {
		return agent.Fail("product_name is required"), nil
	}

	match, err := t.uc.ResolveProduct(ctx, productName, 0.8)
	if err != nil {
		if errors.Is(err, market.ErrNotFound) {
			return agent.Fail(fmt.Sprintf("Unknown product '%s'", productName)), nil
		}
		return agent.Result{}, err
	}

	insight, err := t.uc.PricingInsights(ctx, match.Product)
	if err != nil {
		return agent.Result{}, err
	}

	msg := fmt.Sprintf(
		"Current market prices for %s:\n"+
			"- Farm/Local: %s ETB/kg\n"+
			"- Supermarket: %s ETB/kg\n"+
			"- Distribution Center: %s ETB/kg\n\n"+
			"Historical selling price: %s ETB/kg\n\n"+
			"Recommendation: Set price at %.2f ETB/kg for competitive positioning and quick turnover.",
		insight.ProductName,
		fmtPrice(insight.FarmAvg),
		fmtPrice(insight.SupermarketAvg),
		fmtPrice(insight.DistributionAvg),
		fmtPrice(insight.HistoricalAvg),
		insight.Recommended,
	)
	if match.Corrected {
		msg = fmt.Sprintf("I'll use %s (from '%s').\n\n", match.Product.ProductName, match.Original) + msg
	}
	return agent.OK(insight, msg), nil
}
