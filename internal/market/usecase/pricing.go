package usecase

import (
	"context"
	"math"

	"horticulture-assistant/internal/market"
)

// Trailing windows tried in order for each market tier. Thin tiers with no
// recent samples widen the window before falling back to all-time.
var pricingWindows = []int{30, 90, 180, 365, 0}

const (
	historicalWindowDays = 60
	recommendedMarkup    = 1.10
)

// PricingInsights computes per-tier competitor averages and a recommended
// price for the product. The recommendation is the farm-gate average with a
// 10% markup, falling back to the 60-day transaction average when no farm
// samples exist.
func (uc *implUseCase) PricingInsights(ctx context.Context, product market.Product) (market.PricingInsight, error) {
	insight := market.PricingInsight{
		ProductID:   product.ProductID,
		ProductName: product.ProductName,
	}

	tiers := []struct {
		market string
		dst    **float64
	}{
		{market.MarketTierFarm, &insight.FarmAvg},
		{market.MarketTierSupermarket, &insight.SupermarketAvg},
		{market.MarketTierDistribution, &insight.DistributionAvg},
	}
	for _, tier := range tiers {
		for _, days := range pricingWindows {
			avg, ok, err := uc.repo.AverageCompetitorPrice(ctx, product.ProductID, tier.market, days)
			if err != nil {
				return market.PricingInsight{}, err
			}
			if ok {
				v := round2(avg)
				*tier.dst = &v
				break
			}
		}
	}

	hist, ok, err := uc.repo.AverageTransactionPrice(ctx, product.ProductID, historicalWindowDays)
	if err != nil {
		return market.PricingInsight{}, err
	}
	if ok {
		v := round2(hist)
		insight.HistoricalAvg = &v
	}

	base := 0.0
	switch {
	case insight.FarmAvg != nil:
		base = *insight.FarmAvg
	case insight.HistoricalAvg != nil:
		base = *insight.HistoricalAvg
	}
	insight.Recommended = round2(base * recommendedMarkup)

	return insight, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
