package tools

import (
	"context"
	"fmt"
	"time"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/model"
)

// CurrentTimeTool reports today's date and the current and next week windows
// so the LLM can ground relative time phrases.
type CurrentTimeTool struct {
	now func() time.Time
}

// NewCurrentTimeTool creates a new current time tool.
func NewCurrentTimeTool() *CurrentTimeTool {
	return &CurrentTimeTool{now: time.Now}
}

func (t *CurrentTimeTool) Name() string {
	return "get_current_time"
}

func (t *CurrentTimeTool) Description() string {
	return "Get the current date and time, plus the Monday-Sunday boundaries of the current and next week."
}

func (t *CurrentTimeTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

func (t *CurrentTimeTool) Execute(_ context.Context, _ model.Scope, _ map[string]interface{}) (agent.Result, error) {
	now := t.now()
	today := truncateToDay(now)
	monday, sunday := weekBounds(today)
	nextMonday := monday.AddDate(0, 0, 7)
	nextSunday := nextMonday.AddDate(0, 0, 6)

	data := map[string]interface{}{
		"now_iso": now.Format(time.RFC3339),
		"today":   today.Format(dateLayout),
		"current_week": map[string]string{
			"start_date": monday.Format(dateLayout),
			"end_date":   sunday.Format(dateLayout),
		},
		"next_week": map[string]string{
			"start_date": nextMonday.Format(dateLayout),
			"end_date":   nextSunday.Format(dateLayout),
		},
	}
	msg := fmt.Sprintf("Today is %s. Current week: %s to %s. Next week: %s to %s.",
		today.Format(dateLayout),
		monday.Format(dateLayout), sunday.Format(dateLayout),
		nextMonday.Format(dateLayout), nextSunday.Format(dateLayout))
	return agent.OK(data, msg), nil
}

// weekBounds returns the Monday and Sunday of the week containing day.
func weekBounds(day time.Time) (time.Time, time.Time) {
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}
