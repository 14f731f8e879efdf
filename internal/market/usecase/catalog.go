package usecase

import (
	"context"
	"strings"

	"horticulture-assistant/internal/market"
)

// ListProducts returns the whole catalog.
func (uc *implUseCase) ListProducts(ctx context.Context) ([]market.Product, error) {
	return uc.repo.ListProducts(ctx)
}

// SearchCatalog finds products matching the query and decorates each hit with
// live availability: the cheapest available lot's price and the total quantity
// across lots. Queries that look like a category word ("veggies") fall back to
// a category search when nothing matches directly.
func (uc *implUseCase) SearchCatalog(ctx context.Context, query string) ([]market.ProductListing, error) {
	products, err := uc.repo.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		if canonical := market.NormalizeCategoryQuery(query); canonical != "" {
			products, err = uc.repo.SearchProducts(ctx, canonical)
			if err != nil {
				return nil, err
			}
		}
	}

	listings := make([]market.ProductListing, 0, len(products))
	for _, p := range products {
		listing := market.ProductListing{Product: p}
		lots, err := uc.repo.GetAvailableInventory(ctx, p.ProductID)
		if err != nil {
			return nil, err
		}
		for _, lot := range lots {
			if !listing.Available || lot.PricePerUnit < listing.MinPricePerUnit {
				listing.MinPricePerUnit = lot.PricePerUnit
			}
			listing.Available = true
			listing.TotalQuantityKg += lot.QuantityKg
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// ResolveProduct finds the catalog product for a possibly misspelled name.
// An exact (case-insensitive) match wins; otherwise the closest catalog name
// scoring at or above threshold is used and the match is flagged as corrected.
// No match at all returns market.ErrNotFound.
func (uc *implUseCase) ResolveProduct(ctx context.Context, name string, threshold float64) (market.ProductMatch, error) {
	product, err := uc.repo.GetProductByName(ctx, name)
	if err == nil {
		return market.ProductMatch{Product: product, Original: name}, nil
	}
	if err != market.ErrNotFound {
		return market.ProductMatch{}, err
	}

	products, err := uc.repo.ListProducts(ctx)
	if err != nil {
		return market.ProductMatch{}, err
	}

	best := market.Product{}
	bestScore := 0.0
	for _, p := range products {
		if s := market.Similarity(name, p.ProductName); s > bestScore {
			best, bestScore = p, s
		}
	}
	if bestScore < threshold {
		return market.ProductMatch{}, market.ErrNotFound
	}

	corrected := !strings.EqualFold(best.ProductName, name)
	return market.ProductMatch{Product: best, Corrected: corrected, Original: name}, nil
}
