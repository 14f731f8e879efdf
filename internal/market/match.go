package market

import "strings"

// Similarity scores how close two strings are, in [0, 1]. Comparison is
// case-insensitive and based on the longest common subsequence, so minor
// typos ("tomatoe", "avacado") still score high against catalog names.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

// BestMatch returns the candidate most similar to query along with its score.
// An empty candidate list scores 0.
func BestMatch(query string, candidates []string) (string, float64) {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		if s := Similarity(query, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore
}

// NormalizeCategoryQuery maps informal category words to the catalog's
// canonical category names. It returns "" when the query is not a category.
func NormalizeCategoryQuery(query string) string {
	switch strings.ToLower(strings.TrimSpace(query)) {
	case "veg", "veggie", "veggies", "vegetable", "vegetables":
		return "vegetables"
	case "fruit", "fruits":
		return "fruits"
	case "dairy", "dairies", "milk products":
		return "dairy"
	}
	return ""
}

var categoryKeywords = map[string][]string{
	"dairy": {"milk", "yogurt", "butter", "cheese"},
	"fruits": {
		"apple", "banana", "avocado", "mango", "papaya", "orange", "lemon",
		"lime", "pineapple", "strawberry", "grape", "pear", "peach",
		"watermelon", "melon",
	},
	"vegetables": {
		"tomato", "onion", "potato", "carrot", "cabbage", "spinach", "lettuce",
		"garlic", "ginger", "pepper", "capsicum", "cucumber", "eggplant",
		"zucchini", "beet", "kale",
	},
}

// InferCategory guesses a product's category from its name. It returns ""
// when no keyword matches.
func InferCategory(productName string) string {
	name := strings.ToLower(productName)
	// Dairy first: "buttermilk" style names should not fall through to
	// produce keywords.
	for _, category := range []string{"dairy", "fruits", "vegetables"} {
		for _, kw := range categoryKeywords[category] {
			if strings.Contains(name, kw) {
				return category
			}
		}
	}
	return ""
}
