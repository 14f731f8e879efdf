package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
)

// CustomerOrdersTool lists the registered user's orders.
type CustomerOrdersTool struct {
	uc market.UseCase
}

// NewCustomerOrdersTool creates a new order listing tool.
func NewCustomerOrdersTool(uc market.UseCase) *CustomerOrdersTool {
	return &CustomerOrdersTool{uc: uc}
}

func (t *CustomerOrdersTool) Name() string {
	return "get_customer_orders"
}

func (t *CustomerOrdersTool) Description() string {
	return "List the user's orders, optionally filtered by status and a delivery date range."
}

func (t *CustomerOrdersTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"status": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"pending", "confirmed", "delivered", "cancelled"},
			"description": "Only orders with this status",
		},
		"start_date": map[string]interface{}{
			"type":        "string",
			"description": "Delivery date range start, YYYY-MM-DD",
		},
		"end_date": map[string]interface{}{
			"type":        "string",
			"description": "Delivery date range end, YYYY-MM-DD",
		},
	})
}

func (t *CustomerOrdersTool) Execute(ctx context.Context, sc model.Scope, args map[string]interface{}) (agent.Result, error) {
	if res, ok := requireRegistered(sc); !ok {
		return res, nil
	}

	var from, to *time.Time
	if start, ok := dateArg(args, "start_date"); ok {
		if end, ok := dateArg(args, "end_date"); ok {
			from, to = &start, &end
		}
	}

	orders, err := t.uc.CustomerOrders(ctx, sc.UserID, stringArg(args, "status"), from, to)
	if err != nil {
		return agent.Result{}, err
	}
	if len(orders) == 0 {
		return agent.OK([]interface{}{}, "You have no orders in the selected range."), nil
	}

	lines := []string{"Your Orders:"}
	for _, o := range orders {
		itemTexts := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			if it.ProductName != "" {
				itemTexts = append(itemTexts, fmt.Sprintf("%gkg %s", it.QuantityKg, it.ProductName))
			}
		}
		lines = append(lines, fmt.Sprintf("- %s: %s — %.2f ETB — %s to %s",
			o.DeliveryDate.Format(dateLayout), o.Status, o.TotalAmount,
			strings.Join(itemTexts, ", "), o.DeliveryLocation))
	}
	return agent.OK(orders, strings.Join(lines, "\n")), nil
}
