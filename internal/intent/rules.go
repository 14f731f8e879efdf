package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The rule chain resolves the common, unambiguous phrasings without a model
// round trip. Messages it cannot place fall through to the LLM classifier.

var (
	phoneRe    = regexp.MustCompile(`\+?(?:251[-\s]?)?0?9\d{8}\b`)
	nameRe     = regexp.MustCompile(`(?i)(?:my\s+name\s+is|name\s*:)\s*([A-Za-z\x{1200}-\x{137F}'\- ]{2,})`)
	locationRe = regexp.MustCompile(`(?i)location\s*:?\s+([A-Za-z\x{1200}-\x{137F}'\- ]{2,})`)
	inAtRe     = regexp.MustCompile(`(?i)\b(?:in|at)\s+([A-Za-z\x{1200}-\x{137F}'\- ]{2,})`)

	quantityRe   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*kg`)
	priceRe      = regexp.MustCompile(`(?i)at\s*([0-9]+(?:\.[0-9]+)?)\s*etb(?:/kg)?`)
	productOfRe  = regexp.MustCompile(`(?i)kg\s+of\s+([A-Za-z\x{1200}-\x{137F}'\- ]+?)(?:\s+at\b|\s*,|\s*\.|\s*$)`)
	availDateRe  = regexp.MustCompile(`(?i)available\s*date\s*:\s*([0-9]{4}-[0-9]{2}-[0-9]{2})`)
	expiryDateRe = regexp.MustCompile(`(?i)expiry\s*date\s*:\s*([0-9]{4}-[0-9]{2}-[0-9]{2})`)
	genImageRe   = regexp.MustCompile(`(?i)generate\s+(an\s+)?image`)
	noGenImageRe = regexp.MustCompile(`(?i)do\s+not\s+generate`)
	daysWindowRe = regexp.MustCompile(`(\d{1,2})\s*day`)
)

const dateLayout = "2006-01-02"

var (
	knowledgeEn = []string{
		"store", "storage", "keep", "keep fresh", "refrigerate", "fridge", "ripe", "ripen",
		"nutrition", "nutritional", "vitamin", "protein", "calories",
		"recipe", "recipes", "cook", "cooking",
		"selection", "choose", "pick",
		"seasonality", "in season", "seasonal",
		"how should i", "how do i", "best way to",
	}
	knowledgeAm = []string{"ፍሪጅ", "ማከማቻ", "እንዴት", "የምግብ ንጥረ ነገር", "ወቅታዊ"}
	imageEn     = []string{
		"generate image", "generate a image", "generate a photo", "generate photo",
		"image of", "photo of", "picture of", "create image", "make an image", "render",
		"image", "photo", "picture",
	}
	imageAm = []string{"ምስል", "ፎቶ", "ስእል"}
)

// MatchRules classifies a message with the rule chain. When no rule fires it
// returns false along with whatever entities (like a phone number) were still
// extractable, so the LLM fallback can reuse them.
func MatchRules(text string, now time.Time) (Detection, bool) {
	t := strings.TrimSpace(text)
	lt := strings.ToLower(t)
	entities := map[string]interface{}{}

	if phone := ExtractPhone(t); phone != "" {
		entities["phone"] = phone
	}

	// Registration: explicit keywords, or a phone number next to a user type.
	_, hasPhone := entities["phone"]
	if containsAny(lt, "register", "sign up", "signup", "sign-up") ||
		(hasPhone && containsAny(lt, "customer", "supplier")) {
		which := RegistrationCustomer
		if strings.Contains(lt, "supplier") {
			which = RegistrationSupplier
		}
		if name := firstGroup(nameRe, t); name != "" {
			entities["name"] = name
		}
		if location := extractLocation(t); location != "" {
			entities["location"] = location
		}
		return Detection{Intent: which, Entities: entities}, true
	}

	// Structured supplier stock additions.
	if strings.Contains(lt, "add inventory") ||
		(strings.Contains(lt, "add") && strings.Contains(lt, "kg") && strings.Contains(lt, "etb")) ||
		(strings.Contains(lt, "available date") && strings.Contains(lt, "expiry date")) {
		if m := quantityRe.FindStringSubmatch(t); m != nil {
			if f, err := strconv.ParseFloat(m[1], 64); err == nil {
				entities["quantity_kg"] = f
			}
		}
		if m := priceRe.FindStringSubmatch(t); m != nil {
			if f, err := strconv.ParseFloat(m[1], 64); err == nil {
				entities["price_per_unit"] = f
			}
		}
		if name := firstGroup(productOfRe, t); name != "" {
			entities["product_name"] = name
		}
		if d := firstGroup(availDateRe, t); d != "" {
			entities["available_date"] = d
		}
		if d := firstGroup(expiryDateRe, t); d != "" {
			entities["expiry_date"] = d
		}
		if genImageRe.MatchString(lt) && !noGenImageRe.MatchString(lt) {
			entities["generate_image"] = true
		}
		return Detection{Intent: AddInventory, Entities: entities}, true
	}

	// Delivery schedule queries, resolving common relative ranges.
	if containsAny(lt, "schedule", "delivery schedule", "deliveries", "delivery plan") {
		addRangeEntities(entities, lt, now)
		return Detection{Intent: CheckSchedule, Entities: entities}, true
	}

	// Expiring stock and flash sales.
	if containsAny(lt, "expiring", "expires", "going bad", "near expiry", "close to expiry", "flash sale", "discount") &&
		!strings.Contains(lt, "add inventory") && !strings.Contains(lt, "available date") {
		if m := daysWindowRe.FindStringSubmatch(lt); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				entities["days"] = n
			}
		}
		return Detection{Intent: FlashSaleCheck, Entities: entities}, true
	}

	// Customer order history.
	if containsAny(lt, "my orders", "orders i have", "order history", "orders i've", "orders i placed", "what orders", "show my orders") {
		addRangeEntities(entities, lt, now)
		return Detection{Intent: CheckCustomerOrders, Entities: entities}, true
	}

	// Product knowledge questions.
	if containsAny(lt, knowledgeEn...) || containsAny(t, knowledgeAm...) {
		return Detection{Intent: KnowledgeQuery, Entities: entities}, true
	}

	// Image requests.
	if containsAny(lt, imageEn...) || containsAny(t, imageAm...) {
		return Detection{Intent: ImageGeneration, Entities: entities}, true
	}

	return Detection{Intent: GeneralChat, Entities: entities}, false
}

func containsAny(s string, tokens ...string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// ExtractPhone pulls an Ethiopian phone number out of free text, with spaces
// and dashes stripped. Returns "" when none is present.
func ExtractPhone(text string) string {
	m := phoneRe.FindString(text)
	if m == "" {
		return ""
	}
	m = strings.ReplaceAll(m, " ", "")
	return strings.ReplaceAll(m, "-", "")
}

func extractLocation(text string) string {
	if loc := firstGroup(locationRe, text); loc != "" {
		return loc
	}
	return firstGroup(inAtRe, text)
}

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[len(m)-1])
	}
	return ""
}

// addRangeEntities resolves "this week", "next week", "today" and "tomorrow"
// to concrete start_date/end_date entities.
func addRangeEntities(entities map[string]interface{}, lt string, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := int(today.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	monday := today.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)

	var start, end time.Time
	switch {
	case strings.Contains(lt, "next week"):
		start, end = monday.AddDate(0, 0, 7), sunday.AddDate(0, 0, 7)
	case containsAny(lt, "this week", "current week", "week") && !strings.Contains(lt, "next"):
		start, end = monday, sunday
	case strings.Contains(lt, "today"):
		start, end = today, today
	case strings.Contains(lt, "tomorrow"):
		start, end = today.AddDate(0, 0, 1), today.AddDate(0, 0, 1)
	default:
		return
	}
	entities["start_date"] = start.Format(dateLayout)
	entities["end_date"] = end.Format(dateLayout)
}
