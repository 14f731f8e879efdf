package agent

import (
	"context"
	"fmt"
	"sort"

	"horticulture-assistant/internal/model"
	"horticulture-assistant/pkg/llmprovider"
	"horticulture-assistant/pkg/log"
)

// Registry manages available tools.
type Registry struct {
	tools map[string]Tool
	l     log.Logger
}

// NewRegistry creates a new tool registry.
func NewRegistry(l log.Logger) *Registry {
	return &Registry{
		tools: make(map[string]Tool),
		l:     l,
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools sorted by name.
func (r *Registry) List() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// Execute runs a tool by name. Unknown tools and execution errors are folded
// into failed Results so the LLM can recover conversationally instead of the
// turn aborting.
func (r *Registry) Execute(ctx context.Context, name string, sc model.Scope, args map[string]interface{}) Result {
	tool, ok := r.tools[name]
	if !ok {
		r.l.Warnf(ctx, "agent.registry: unknown tool %s", name)
		return Fail(fmt.Sprintf("unknown tool: %s", name))
	}

	result, err := tool.Execute(ctx, sc, args)
	if err != nil {
		r.l.Errorf(ctx, "agent.registry: tool %s failed: %v", name, err)
		return Fail(fmt.Sprintf("%s failed: %v", name, err))
	}
	return result
}

// ToFunctionDefinitions converts tools to LLM function calling format.
func (r *Registry) ToFunctionDefinitions() []llmprovider.Tool {
	tools := make([]llmprovider.Tool, 0, len(r.tools))
	for _, tool := range r.List() {
		tools = append(tools, llmprovider.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return tools
}
