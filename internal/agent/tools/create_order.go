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

// CreateOrderTool places a cash-on-delivery order for a registered customer.
type CreateOrderTool struct {
	uc market.UseCase
}

// NewCreateOrderTool creates a new order placement tool.
func NewCreateOrderTool(uc market.UseCase) *CreateOrderTool {
	return &CreateOrderTool{uc: uc}
}

func (t *CreateOrderTool) Name() string {
	return "create_order"
}

func (t *CreateOrderTool) Description() string {
	return "Place a cash-on-delivery order for the registered user. Requires items, a delivery date (YYYY-MM-DD) and a delivery location."
}

func (t *CreateOrderTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"items": map[string]interface{}{
			"type":        "array",
			"description": "Products and quantities to order",
			"items": objectSchema(map[string]interface{}{
				"product_name": map[string]interface{}{"type": "string"},
				"quantity_kg":  map[string]interface{}{"type": "number"},
			}, "product_name", "quantity_kg"),
		},
		"delivery_date": map[string]interface{}{
			"type":        "string",
			"description": "Delivery date in YYYY-MM-DD",
		},
		"delivery_location": map[string]interface{}{
			"type":        "string",
			"description": "Where to deliver the order",
		},
	}, "items", "delivery_date", "delivery_location")
}

func (t *CreateOrderTool) Execute(ctx context.Context, sc model.Scope, args map[string]interface{}) (agent.Result, error) {
	if sc.SessionID == "" {
		return agent.Fail("session_id is required"), nil
	}
	if !sc.Registered {
		return agent.Fail("User must be registered to create an order"), nil
	}
	if sc.UserID == "" {
		return agent.Fail("Session missing user_id"), nil
	}

	rawItems, _ := args["items"].([]interface{})
	deliveryDate, hasDate := dateArg(args, "delivery_date")
	location := strings.TrimSpace(stringArg(args, "delivery_location"))
	if len(rawItems) == 0 || !hasDate || location == "" {
		return agent.Fail("items, delivery_date, and delivery_location are required"), nil
	}

	items := make([]market.OrderRequestLine, 0, len(rawItems))
	for _, raw := range rawItems {
		entry, _ := raw.(map[string]interface{})
		name := strings.TrimSpace(stringArg(entry, "product_name"))
		qty, ok := floatArg(entry, "quantity_kg")
		if name == "" || !ok || qty <= 0 {
			return agent.Fail("each item needs product_name and a positive quantity_kg"), nil
		}
		items = append(items, market.OrderRequestLine{ProductName: name, QuantityKg: qty})
	}

	receipt, err := t.uc.PlaceOrder(ctx, market.PlaceOrderInput{
		CustomerID:       sc.UserID,
		Items:            items,
		DeliveryDate:     deliveryDate,
		DeliveryLocation: location,
	})
	if err != nil {
		switch {
		case errors.Is(err, market.ErrPastDeliveryDate):
			return agent.Fail(fmt.Sprintf("Delivery date %s is in the past. Please choose today or a future date.",
				deliveryDate.Format(dateLayout))), nil
		case errors.Is(err, market.ErrNotFound), errors.Is(err, market.ErrOutOfStock):
			return agent.Fail(err.Error()), nil
		}
		return agent.Result{}, err
	}

	itemTexts := make([]string, 0, len(receipt.Items))
	for _, line := range receipt.Items {
		itemTexts = append(itemTexts, fmt.Sprintf("%gkg %s", line.QuantityKg, line.ProductName))
	}
	msg := fmt.Sprintf(
		"Order confirmed! 🎉\nOrder ID: %s\nItems: %s\nTotal: %.2f ETB\nDelivery: %s to %s\nPayment: Cash on Delivery",
		receipt.OrderID,
		strings.Join(itemTexts, ", "),
		receipt.TotalAmount,
		receipt.DeliveryDate.Format(dateLayout),
		receipt.DeliveryLocation,
	)
	return agent.OK(receipt, msg), nil
}
