package tools

import (
	"fmt"
	"strconv"
	"time"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/model"
)

const dateLayout = "2006-01-02"

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// floatArg tolerates numbers the LLM sends as strings.
func floatArg(args map[string]interface{}, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func intArg(args map[string]interface{}, key string) (int, bool) {
	f, ok := floatArg(args, key)
	return int(f), ok
}

func boolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

func dateArg(args map[string]interface{}, key string) (time.Time, bool) {
	raw := stringArg(args, key)
	if raw == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func requireRegistered(sc model.Scope) (agent.Result, bool) {
	if sc.SessionID == "" {
		return agent.Fail("session_id is required"), false
	}
	if !sc.Registered {
		return agent.Fail("User must be registered"), false
	}
	if sc.UserID == "" {
		return agent.Fail("Session missing user_id"), false
	}
	return agent.Result{}, true
}

func requireSupplier(sc model.Scope) (agent.Result, bool) {
	if sc.SessionID == "" {
		return agent.Fail("session_id is required"), false
	}
	if !sc.Registered || sc.UserType != model.UserTypeSupplier {
		return agent.Fail("User must be a registered supplier"), false
	}
	return agent.Result{}, true
}

func fmtPrice(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

// objectSchema builds the JSON schema boilerplate shared by all tools.
func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
