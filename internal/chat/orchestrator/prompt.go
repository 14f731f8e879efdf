package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"horticulture-assistant/internal/model"
	"horticulture-assistant/pkg/llmprovider"
)

// Tools only meaningful for one side of the marketplace. Sessions with an
// unknown user type see everything, since registration may happen mid-turn.
var (
	supplierOnlyTools = map[string]bool{
		"add_inventory":         true,
		"check_supplier_stock":  true,
		"get_supplier_schedule": true,
		"suggest_flash_sale":    true,
	}
	customerOnlyTools = map[string]bool{
		"create_order":        true,
		"get_customer_orders": true,
	}
)

// systemPrompt renders the turn's system instruction from the session state.
func (o *Orchestrator) systemPrompt(sess model.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, systemPromptTemplate,
		sess.UserType, sess.Registered, sess.Name,
		sess.Context.CurrentFlow, sess.Context.AwaitingConfirmation)

	if d := sess.Context.PendingOrder; d != nil {
		fmt.Fprintf(&b, "\n\nPending order draft: %gkg %s", d.QuantityKg, d.ProductName)
		if d.DeliveryDate != "" {
			fmt.Fprintf(&b, ", delivery %s", d.DeliveryDate)
		}
		if d.Location != "" {
			fmt.Fprintf(&b, " to %s", d.Location)
		}
		b.WriteString(". Collect the missing fields, confirm, then call create_order.")
	}
	if d := sess.Context.PendingInventory; d != nil {
		fmt.Fprintf(&b, "\n\nPending inventory draft: %gkg %s at %g ETB/kg",
			d.QuantityKg, d.ProductName, d.PricePerUnit)
		if d.AvailableDate != "" {
			fmt.Fprintf(&b, ", available %s", d.AvailableDate)
		}
		b.WriteString(". Collect the missing fields, confirm, then call add_inventory.")
	}

	if !sess.Registered {
		b.WriteString(registrationHint)
	}
	return b.String()
}

// historyMessages converts the bounded session history into LLM messages.
// The just-appended user message is the last entry.
func (o *Orchestrator) historyMessages(ctx context.Context, sessionID string) []llmprovider.Message {
	history, err := o.sessions.RecentHistory(ctx, sessionID, o.cfg.HistoryWindow)
	if err != nil {
		o.l.Errorf(ctx, "%s: session %s: history: %v", logPrefixProcessTurn, sessionID, err)
		return nil
	}

	messages := make([]llmprovider.Message, 0, len(history))
	for _, h := range history {
		role := "user"
		if h.Role == "assistant" {
			role = "model"
		}
		if strings.TrimSpace(h.Content) == "" {
			continue
		}
		messages = append(messages, llmprovider.Message{
			Role:  role,
			Parts: []llmprovider.Part{{Text: h.Content}},
		})
	}
	return messages
}

// toolDeclarationsFor filters the registry's declarations by user type.
func (o *Orchestrator) toolDeclarationsFor(sess model.Session) []llmprovider.Tool {
	all := o.registry.ToFunctionDefinitions()
	if sess.UserType == model.UserTypeUnknown {
		return all
	}

	filtered := make([]llmprovider.Tool, 0, len(all))
	for _, tool := range all {
		if sess.UserType == model.UserTypeCustomer && supplierOnlyTools[tool.Name] {
			continue
		}
		if sess.UserType == model.UserTypeSupplier && customerOnlyTools[tool.Name] {
			continue
		}
		filtered = append(filtered, tool)
	}
	return filtered
}
