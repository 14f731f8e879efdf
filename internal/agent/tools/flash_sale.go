package tools

import (
	"context"
	"fmt"
	"strings"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
)

const defaultFlashSaleDays = 3

// FlashSaleTool proposes discounts for the supplier's stock nearing expiry.
type FlashSaleTool struct {
	uc          market.UseCase
	defaultDays int
}

// NewFlashSaleTool creates a new flash sale tool. defaultDays is the expiry
// window used when the model does not pass days_threshold.
func NewFlashSaleTool(uc market.UseCase, defaultDays int) *FlashSaleTool {
	if defaultDays <= 0 {
		defaultDays = defaultFlashSaleDays
	}
	return &FlashSaleTool{uc: uc, defaultDays: defaultDays}
}

func (t *FlashSaleTool) Name() string {
	return "suggest_flash_sale"
}

func (t *FlashSaleTool) Description() string {
	return "Check the supplier's inventory for stock nearing expiry and suggest flash sale discounts."
}

func (t *FlashSaleTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"days_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Flag stock expiring within this many days (default 3)",
		},
	})
}

func (t *FlashSaleTool) Execute(ctx context.Context, sc model.Scope, args map[string]interface{}) (agent.Result, error) {
	if res, ok := requireSupplier(sc); !ok {
		return res, nil
	}

	days := t.defaultDays
	if v, ok := intArg(args, "days_threshold"); ok && v > 0 {
		days = v
	}

	suggestions, err := t.uc.SuggestFlashSales(ctx, sc.UserID, days)
	if err != nil {
		return agent.Result{}, err
	}
	if len(suggestions) == 0 {
		return agent.OK([]interface{}{}, fmt.Sprintf("No expiring products in the next %d days.", days)), nil
	}

	lines := []string{"⚠️ Expiring Inventory Alert:"}
	for _, s := range suggestions {
		lines = append(lines, fmt.Sprintf("- %s (%g kg): Expires in %d days → Suggest %d%% flash sale",
			s.ProductName, s.QuantityKg, s.DaysLeft, s.DiscountPercent))
	}
	return agent.OK(suggestions, strings.Join(lines, "\n")), nil
}
