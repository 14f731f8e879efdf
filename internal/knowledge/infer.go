package knowledge

import (
	"strings"

	"horticulture-assistant/internal/market"
)

// Knowledge base categories.
const (
	CategoryStorage     = "storage"
	CategoryNutrition   = "nutrition"
	CategoryRecipes     = "recipes"
	CategorySelection   = "selection"
	CategorySeasonality = "seasonality"
)

var categoryHints = []struct {
	category string
	terms    []string
}{
	{CategoryStorage, []string{"stor", "store", "storage", "storing", "keep", "refrigerate", "fridge", "ripe", "ripen"}},
	{CategoryNutrition, []string{"nutrition", "nutritional", "vitamin", "calories", "protein"}},
	{CategoryRecipes, []string{"recipe", "recipes", "cook", "cooking"}},
	{CategorySelection, []string{"select", "selection", "choose", "pick"}},
	{CategorySeasonality, []string{"season", "seasonality", "in season"}},
}

// InferCategory guesses the knowledge category a question is about. It
// returns "" when no hint matches.
func InferCategory(question string) string {
	q := strings.ToLower(question)
	for _, hint := range categoryHints {
		for _, term := range hint.terms {
			if strings.Contains(q, term) {
				return hint.category
			}
		}
	}
	return ""
}

// InferProductName finds which catalog product a question mentions. A direct
// substring match wins; otherwise the closest catalog name scoring at least
// 0.8 is used. No match returns "".
func InferProductName(question string, catalogNames []string) string {
	q := strings.ToLower(question)
	for _, name := range catalogNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.Contains(q, strings.ToLower(name)) {
			return name
		}
	}

	best, score := market.BestMatch(question, catalogNames)
	if score >= 0.8 {
		return best
	}
	return ""
}
