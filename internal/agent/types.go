package agent

import (
	"context"

	"horticulture-assistant/internal/model"
)

// Tool represents an assistant tool that can be called by the LLM.
type Tool interface {
	// Name returns the tool name (used in function calling).
	Name() string

	// Description returns what the tool does (for the LLM).
	Description() string

	// Parameters returns the JSON schema for tool parameters.
	Parameters() map[string]interface{}

	// Execute runs the tool for the calling session.
	Execute(ctx context.Context, sc model.Scope, args map[string]interface{}) (Result, error)
}

// Result is the outcome of a tool execution. Message is conversational text
// the LLM can relay verbatim; Data carries the structured payload.
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// OK builds a successful result.
func OK(data interface{}, message string) Result {
	return Result{Success: true, Data: data, Message: message}
}

// Fail builds a failed result.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}
