package tools

import (
	"context"
	"fmt"
	"strings"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
)

// SupplierStockTool lists the supplier's current inventory.
type SupplierStockTool struct {
	uc market.UseCase
}

// NewSupplierStockTool creates a new stock listing tool.
func NewSupplierStockTool(uc market.UseCase) *SupplierStockTool {
	return &SupplierStockTool{uc: uc}
}

func (t *SupplierStockTool) Name() string {
	return "check_supplier_stock"
}

func (t *SupplierStockTool) Description() string {
	return "List all of the supplier's inventory lots with quantities, prices and dates."
}

func (t *SupplierStockTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *SupplierStockTool) Execute(ctx context.Context, sc model.Scope, _ map[string]interface{}) (agent.Result, error) {
	if res, ok := requireSupplier(sc); !ok {
		return res, nil
	}

	items, err := t.uc.SupplierStock(ctx, sc.UserID)
	if err != nil {
		return agent.Result{}, err
	}
	if len(items) == 0 {
		return agent.OK([]interface{}{}, "You have no inventory items yet."), nil
	}

	lines := make([]string, 0, len(items))
	for i, it := range items {
		line := fmt.Sprintf("%d. %s: %gkg @ %g ETB/kg (Available: %s",
			i+1, it.ProductName, it.QuantityKg, it.PricePerUnit, it.AvailableDate.Format(dateLayout))
		if it.ExpiryDate != nil {
			line += " Expires: " + it.ExpiryDate.Format(dateLayout)
		}
		line += ")"
		lines = append(lines, line)
	}
	return agent.OK(items, "Your Current Inventory:\n"+strings.Join(lines, "\n")), nil
}
