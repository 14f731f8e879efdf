package usecase

import (
	"context"
	"fmt"
	"time"

	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/market/repository"
)

const productMatchThreshold = 0.8

// PlaceOrder creates a pending cash-on-delivery order. Each line is priced at
// the cheapest available lot of its product. Orders for past delivery dates
// are rejected.
func (uc *implUseCase) PlaceOrder(ctx context.Context, input market.PlaceOrderInput) (market.OrderReceipt, error) {
	today := truncateToDay(time.Now().UTC())
	if truncateToDay(input.DeliveryDate).Before(today) {
		return market.OrderReceipt{}, market.ErrPastDeliveryDate
	}

	var (
		items []repository.OrderItemOptions
		lines []market.OrderLine
		total float64
	)
	for _, req := range input.Items {
		match, err := uc.ResolveProduct(ctx, req.ProductName, productMatchThreshold)
		if err != nil {
			return market.OrderReceipt{}, fmt.Errorf("product %q: %w", req.ProductName, err)
		}

		lots, err := uc.repo.GetAvailableInventory(ctx, match.Product.ProductID)
		if err != nil {
			return market.OrderReceipt{}, err
		}
		if len(lots) == 0 {
			return market.OrderReceipt{}, fmt.Errorf("product %q: %w", match.Product.ProductName, market.ErrOutOfStock)
		}

		price := lots[0].PricePerUnit
		for _, lot := range lots[1:] {
			if lot.PricePerUnit < price {
				price = lot.PricePerUnit
			}
		}

		items = append(items, repository.OrderItemOptions{
			ProductID:    match.Product.ProductID,
			QuantityKg:   req.QuantityKg,
			PricePerUnit: price,
		})
		lines = append(lines, market.OrderLine{
			ProductID:    match.Product.ProductID,
			ProductName:  match.Product.ProductName,
			QuantityKg:   req.QuantityKg,
			PricePerUnit: price,
		})
		total += req.QuantityKg * price
	}
	total = round2(total)

	orderID, err := uc.repo.CreateOrder(ctx, repository.CreateOrderOptions{
		CustomerID:       input.CustomerID,
		DeliveryDate:     input.DeliveryDate,
		DeliveryLocation: input.DeliveryLocation,
		TotalAmount:      total,
		Items:            items,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", uc.scope("PlaceOrder"), err)
		return market.OrderReceipt{}, err
	}

	uc.l.Infof(ctx, "%s: order %s total %.2f", uc.scope("PlaceOrder"), orderID, total)
	return market.OrderReceipt{
		OrderID:          orderID,
		TotalAmount:      total,
		DeliveryDate:     input.DeliveryDate,
		DeliveryLocation: input.DeliveryLocation,
		Items:            lines,
	}, nil
}

// CustomerOrders lists a customer's orders, optionally narrowed by status and
// by a delivery date window.
func (uc *implUseCase) CustomerOrders(ctx context.Context, customerID, status string, from, to *time.Time) ([]market.OrderSummary, error) {
	orders, err := uc.repo.GetCustomerOrders(ctx, customerID, status)
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return orders, nil
	}

	filtered := make([]market.OrderSummary, 0, len(orders))
	for _, o := range orders {
		day := truncateToDay(o.DeliveryDate)
		if from != nil && day.Before(truncateToDay(*from)) {
			continue
		}
		if to != nil && day.After(truncateToDay(*to)) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered, nil
}

// ConfirmOrder marks an order as confirmed.
func (uc *implUseCase) ConfirmOrder(ctx context.Context, orderID string) error {
	return uc.repo.UpdateOrderStatus(ctx, orderID, market.OrderStatusConfirmed)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
