package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/imagegen"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
	"horticulture-assistant/pkg/log"
)

// AddInventoryTool records a new stock lot for a registered supplier, with an
// optional generated product image.
type AddInventoryTool struct {
	uc     market.UseCase
	images imagegen.UseCase
	l      log.Logger
}

// NewAddInventoryTool creates a new inventory tool.
func NewAddInventoryTool(uc market.UseCase, images imagegen.UseCase, l log.Logger) *AddInventoryTool {
	return &AddInventoryTool{uc: uc, images: images, l: l}
}

func (t *AddInventoryTool) Name() string {
	return "add_inventory"
}

func (t *AddInventoryTool) Description() string {
	return "Add a stock lot to the supplier's inventory: product, quantity in kg, price per kg and the date it becomes available. Optionally generates a product image."
}

func (t *AddInventoryTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"product_name": map[string]interface{}{
			"type":        "string",
			"description": "The product being stocked",
		},
		"quantity_kg": map[string]interface{}{
			"type":        "number",
			"description": "Quantity in kilograms",
		},
		"price_per_unit": map[string]interface{}{
			"type":        "number",
			"description": "Asking price in ETB per kg",
		},
		"available_date": map[string]interface{}{
			"type":        "string",
			"description": "Date the stock is available, YYYY-MM-DD",
		},
		"expiry_date": map[string]interface{}{
			"type":        "string",
			"description": "Optional expiry date, YYYY-MM-DD",
		},
		"generate_image": map[string]interface{}{
			"type":        "boolean",
			"description": "Whether to generate a product photo for the listing",
		},
	}, "product_name", "quantity_kg", "price_per_unit", "available_date")
}

func (t *AddInventoryTool) Execute(ctx context.Context, sc model.Scope, args map[string]interface{}) (agent.Result, error) {
	if res, ok := requireSupplier(sc); !ok {
		return res, nil
	}

	productName := strings.TrimSpace(stringArg(args, "product_name"))
	qty, hasQty := floatArg(args, "quantity_kg")
	price, hasPrice := floatArg(args, "price_per_unit")
	availableDate, hasDate := dateArg(args, "available_date")
	if productName == "" || !hasQty || !hasPrice || !hasDate {
		return agent.Fail("product_name, quantity_kg, price_per_unit, and available_date are required"), nil
	}
	var expiryDate *time.Time
	if d, ok := dateArg(args, "expiry_date"); ok {
		expiryDate = &d
	}

	// Resolve first so a generated image uses the canonical product name.
	match, err := t.uc.ResolveProduct(ctx, productName, 0.8)
	if err != nil {
		if errors.Is(err, market.ErrNotFound) {
			return agent.Fail(fmt.Sprintf("Unknown product '%s'", productName)), nil
		}
		return agent.Result{}, err
	}

	wantImage := boolArg(args, "generate_image")
	imageURL := ""
	if wantImage {
		url, imgErr := t.images.GenerateProductImage(ctx, match.Product.ProductName)
		if imgErr != nil {
			t.l.Warnf(ctx, "agent.tools.add_inventory: image generation failed for %s: %v", match.Product.ProductName, imgErr)
		} else {
			imageURL = url
		}
	}

	out, err := t.uc.AddStock(ctx, market.AddStockInput{
		SupplierID:    sc.UserID,
		ProductName:   match.Product.ProductName,
		QuantityKg:    qty,
		PricePerUnit:  price,
		AvailableDate: availableDate,
		ExpiryDate:    expiryDate,
		ImageURL:      imageURL,
	})
	if err != nil {
		return agent.Result{}, err
	}

	msg := fmt.Sprintf("Inventory added: %s %gkg @ %g ETB/kg (id=%d)",
		match.Product.ProductName, qty, price, out.InventoryID)
	if imageURL != "" {
		msg += "\nImage: " + imageURL
	} else if wantImage {
		msg += "\nImage generation failed."
	}
	if match.Corrected {
		msg = fmt.Sprintf("I'll use %s (from '%s').\n", match.Product.ProductName, match.Original) + msg
	}
	return agent.OK(map[string]interface{}{
		"inventory_id": out.InventoryID,
		"image_url":    imageURL,
	}, msg), nil
}
