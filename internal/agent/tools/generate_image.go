package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/imagegen"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
)

// GenerateImageTool renders a product photo on demand.
type GenerateImageTool struct {
	uc     market.UseCase
	images imagegen.UseCase
}

// NewGenerateImageTool creates a new image generation tool.
func NewGenerateImageTool(uc market.UseCase, images imagegen.UseCase) *GenerateImageTool {
	return &GenerateImageTool{uc: uc, images: images}
}

func (t *GenerateImageTool) Name() string {
	return "generate_product_image"
}

func (t *GenerateImageTool) Description() string {
	return "Generate a studio photo of a catalog product and return its URL."
}

func (t *GenerateImageTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"product_name": map[string]interface{}{
			"type":        "string",
			"description": "The product to photograph",
		},
	}, "product_name")
}

func (t *GenerateImageTool) Execute(ctx context.Context, _ model.Scope, args map[string]interface{}) (agent.Result, error) {
	name := strings.TrimSpace(stringArg(args, "product_name"))
	if name == "" {
		name = strings.TrimSpace(stringArg(args, "query"))
	}
	if name == "" {
		return agent.Fail("product_name is required"), nil
	}

	match, err := t.resolve(ctx, name)
	if err != nil {
		if errors.Is(err, market.ErrNotFound) {
			return agent.Fail(fmt.Sprintf("Unknown product '%s'", name)), nil
		}
		return agent.Result{}, err
	}

	url, err := t.images.GenerateProductImage(ctx, match.Product.ProductName)
	if err != nil {
		return agent.Fail(fmt.Sprintf("Image generation failed: %v", err)), nil
	}

	msg := fmt.Sprintf("Image generated for %s: %s", match.Product.ProductName, url)
	if match.Corrected {
		msg = fmt.Sprintf("I'll use %s (from '%s').\n", match.Product.ProductName, match.Original) + msg
	}
	return agent.OK(map[string]interface{}{
		"image_url":    url,
		"product_name": match.Product.ProductName,
	}, msg), nil
}

// resolve is more forgiving than the usual product lookup: phrases like
// "a photo of fresh tomato" first try a catalog substring match, then fuzzy
// matching at a lower threshold.
func (t *GenerateImageTool) resolve(ctx context.Context, name string) (market.ProductMatch, error) {
	match, err := t.uc.ResolveProduct(ctx, name, 0.8)
	if err == nil {
		return match, nil
	}
	if !errors.Is(err, market.ErrNotFound) {
		return market.ProductMatch{}, err
	}

	lower := strings.ToLower(name)
	if products, listErr := t.uc.ListProducts(ctx); listErr == nil {
		for _, p := range products {
			pn := strings.TrimSpace(p.ProductName)
			if pn != "" && strings.Contains(lower, strings.ToLower(pn)) {
				return market.ProductMatch{Product: p, Corrected: true, Original: name}, nil
			}
		}
	}

	return t.uc.ResolveProduct(ctx, name, 0.65)
}
