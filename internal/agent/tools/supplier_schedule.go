package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
)

// SupplierScheduleTool summarizes the supplier's confirmed deliveries,
// grouped by day. Defaults to the current Monday-Sunday week.
type SupplierScheduleTool struct {
	uc  market.UseCase
	now func() time.Time
}

// NewSupplierScheduleTool creates a new schedule tool.
func NewSupplierScheduleTool(uc market.UseCase) *SupplierScheduleTool {
	return &SupplierScheduleTool{uc: uc, now: time.Now}
}

func (t *SupplierScheduleTool) Name() string {
	return "get_supplier_schedule"
}

func (t *SupplierScheduleTool) Description() string {
	return "Get the supplier's confirmed delivery schedule grouped by day. Defaults to the current week when no range is given."
}

func (t *SupplierScheduleTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"start_date": map[string]interface{}{
			"type":        "string",
			"description": "Range start, YYYY-MM-DD",
		},
		"end_date": map[string]interface{}{
			"type":        "string",
			"description": "Range end, YYYY-MM-DD",
		},
	})
}

func (t *SupplierScheduleTool) Execute(ctx context.Context, sc model.Scope, args map[string]interface{}) (agent.Result, error) {
	if res, ok := requireSupplier(sc); !ok {
		return res, nil
	}

	start, hasStart := dateArg(args, "start_date")
	end, hasEnd := dateArg(args, "end_date")
	if !hasStart || !hasEnd {
		today := truncateToDay(t.now())
		start, end = weekBounds(today)
	}

	orders, err := t.uc.SupplierSchedule(ctx, sc.UserID, start, end)
	if err != nil {
		return agent.Result{}, err
	}
	if len(orders) == 0 {
		return agent.OK([]interface{}{}, "No confirmed orders scheduled in the selected range."), nil
	}

	type dayTotal struct {
		count int
		total float64
	}
	byDate := map[string]*dayTotal{}
	for _, o := range orders {
		key := o.DeliveryDate.Format(dateLayout)
		if byDate[key] == nil {
			byDate[key] = &dayTotal{}
		}
		byDate[key].count++
		byDate[key].total += o.TotalAmount
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := []string{"Your Delivery Schedule:"}
	for _, k := range keys {
		day, _ := time.Parse(dateLayout, k)
		lines = append(lines, fmt.Sprintf("%s: %d orders (%.0f ETB total)",
			day.Format("Monday, Jan 02"), byDate[k].count, byDate[k].total))
	}
	return agent.OK(orders, strings.Join(lines, "\n")), nil
}
