package tools

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/model"
)

// ParseDateTool turns human date phrases into ISO dates.
type ParseDateTool struct {
	now func() time.Time
}

// NewParseDateTool creates a new date parsing tool.
func NewParseDateTool() *ParseDateTool {
	return &ParseDateTool{now: time.Now}
}

func (t *ParseDateTool) Name() string {
	return "parse_date_string"
}

func (t *ParseDateTool) Description() string {
	return "Parse a human date phrase (e.g. 'tomorrow', 'Oct 25', '25/10') relative to today and return an ISO date (YYYY-MM-DD)."
}

func (t *ParseDateTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"text": map[string]interface{}{
			"type":        "string",
			"description": "The date phrase to parse",
		},
	}, "text")
}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var (
	monthDayRe = regexp.MustCompile(`\b([a-zA-Z]{3,9})\s+(\d{1,2})(?:\D+(\d{4}))?\b`)
	dayMonthRe = regexp.MustCompile(`\b(\d{1,2})\s+([a-zA-Z]{3,9})(?:\D+(\d{4}))?\b`)
	numericRe  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{4}))?\b`)
)

func (t *ParseDateTool) Execute(_ context.Context, _ model.Scope, args map[string]interface{}) (agent.Result, error) {
	raw := strings.TrimSpace(stringArg(args, "text"))
	if raw == "" {
		return agent.Fail("text is required"), nil
	}

	today := truncateToDay(t.now().UTC())
	s := strings.ToLower(raw)

	if s == "today" || s == "ዛሬ" {
		return parsedDateResult(today), nil
	}
	if s == "tomorrow" || s == "ነገ" {
		return parsedDateResult(today.AddDate(0, 0, 1)), nil
	}

	// Month name then day: "oct 25", "october 25, 2025".
	if m := monthDayRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthNames[m[1]]; ok {
			return resolveDate(today, month, m[2], m[3])
		}
	}

	// Day then month name: "25 oct", "25 october 2025".
	if m := dayMonthRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthNames[m[2]]; ok {
			return resolveDate(today, month, m[1], m[3])
		}
	}

	// Numeric, day-first as written in Ethiopia: "25/10", "25-10-2025". When
	// the first number could be a month and the second cannot, swap.
	if m := numericRe.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		day, month := a, b
		if a <= 12 && b > 12 {
			day, month = b, a
		}
		if month < 1 || month > 12 {
			return agent.Fail("Invalid date components"), nil
		}
		return resolveDate(today, time.Month(month), strconv.Itoa(day), m[3])
	}

	return agent.Fail("Could not parse date string"), nil
}

func resolveDate(today time.Time, month time.Month, dayStr, yearStr string) (agent.Result, error) {
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return agent.Fail("Invalid date components"), nil
	}

	year := today.Year()
	explicitYear := yearStr != ""
	if explicitYear {
		year, _ = strconv.Atoi(yearStr)
	}

	candidate, ok := mkDate(year, month, day)
	if !ok {
		return agent.Fail("Invalid date components"), nil
	}
	if !explicitYear && candidate.Before(today) {
		candidate, ok = mkDate(year+1, month, day)
		if !ok {
			return agent.Fail("Invalid date components"), nil
		}
	}
	return parsedDateResult(candidate), nil
}

// mkDate rejects impossible dates that time.Date would silently normalize,
// like February 30th.
func mkDate(year int, month time.Month, day int) (time.Time, bool) {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func parsedDateResult(d time.Time) agent.Result {
	iso := d.Format(dateLayout)
	return agent.OK(map[string]interface{}{"date": iso}, fmt.Sprintf("Parsed date: %s", iso))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
