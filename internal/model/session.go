package model

import (
	"time"

	"github.com/google/uuid"
)

// UserType identifies which side of the marketplace the user is on.
// Once set to customer or supplier it never changes for the session.
type UserType string

const (
	UserTypeUnknown  UserType = "unknown"
	UserTypeCustomer UserType = "customer"
	UserTypeSupplier UserType = "supplier"
)

// HistoryMessage is a single conversation turn.
type HistoryMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderDraft accumulates order details across turns until confirmed.
type OrderDraft struct {
	ProductName  string  `json:"product_name"`
	QuantityKg   float64 `json:"quantity_kg"`
	DeliveryDate string  `json:"delivery_date,omitempty"`
	Location     string  `json:"location,omitempty"`
}

// InventoryDraft accumulates inventory details across turns until confirmed.
type InventoryDraft struct {
	ProductName   string  `json:"product_name"`
	QuantityKg    float64 `json:"quantity_kg"`
	PricePerUnit  float64 `json:"price_per_unit"`
	HarvestDate   string  `json:"harvest_date,omitempty"`
	AvailableDate string  `json:"available_date,omitempty"`
}

// Context is the per-session conversational state.
type Context struct {
	CurrentFlow          Flow            `json:"current_flow"`
	PendingOrder         *OrderDraft     `json:"pending_order,omitempty"`
	PendingInventory     *InventoryDraft `json:"pending_inventory,omitempty"`
	LastIntent           string          `json:"last_intent,omitempty"`
	AwaitingConfirmation bool            `json:"awaiting_confirmation"`
}

// Session is the full conversational state for one user.
// At most one pending draft is set at a time, and its shape matches CurrentFlow.
type Session struct {
	SessionID       string           `json:"session_id"`
	UserID          string           `json:"user_id,omitempty"`
	UserType        UserType         `json:"user_type"`
	Registered      bool             `json:"registered"`
	Phone           string           `json:"phone,omitempty"`
	Name            string           `json:"name,omitempty"`
	DefaultLocation string           `json:"default_location,omitempty"`
	Context         Context          `json:"context"`
	History         []HistoryMessage `json:"conversation_history"`
	Language        string           `json:"language"`
	CreatedAt       time.Time        `json:"created_at"`
	LastActive      time.Time        `json:"last_active"`
}

// NewSession returns a fresh session in the idle flow.
func NewSession() Session {
	now := time.Now().UTC()
	return Session{
		SessionID:  uuid.NewString(),
		UserType:   UserTypeUnknown,
		Context:    Context{CurrentFlow: FlowIdle},
		Language:   "auto",
		CreatedAt:  now,
		LastActive: now,
	}
}

// Scope carries the caller identity into tool executions.
type Scope struct {
	SessionID  string
	UserID     string
	UserType   UserType
	Registered bool
	Phone      string
	Name       string
	Location   string
}

// ScopeOf builds the tool execution scope from a session.
func ScopeOf(s Session) Scope {
	return Scope{
		SessionID:  s.SessionID,
		UserID:     s.UserID,
		UserType:   s.UserType,
		Registered: s.Registered,
		Phone:      s.Phone,
		Name:       s.Name,
		Location:   s.DefaultLocation,
	}
}
