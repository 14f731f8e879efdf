package model

import "testing"

func TestFlowCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Flow
		to   Flow
		want bool
	}{
		{"idle to ordering", FlowIdle, FlowOrdering, true},
		{"idle to registering", FlowIdle, FlowRegistering, true},
		{"idle to confirming order", FlowIdle, FlowConfirmingOrder, false},
		{"registering to ordering", FlowRegistering, FlowOrdering, true},
		{"ordering to confirming order", FlowOrdering, FlowConfirmingOrder, true},
		{"ordering to adding inventory", FlowOrdering, FlowAddingInventory, false},
		{"confirming order to idle", FlowConfirmingOrder, FlowIdle, true},
		{"confirming order to ordering", FlowConfirmingOrder, FlowOrdering, false},
		{"adding inventory to confirming inventory", FlowAddingInventory, FlowConfirmingInventory, true},
		{"confirming inventory to idle", FlowConfirmingInventory, FlowIdle, true},
		{"querying to idle", FlowQuerying, FlowIdle, true},
		{"querying to ordering", FlowQuerying, FlowOrdering, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestFlowTransition(t *testing.T) {
	got, err := FlowIdle.Transition(FlowOrdering)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != FlowOrdering {
		t.Errorf("expected ordering, got %s", got)
	}

	got, err = FlowConfirmingOrder.Transition(FlowOrdering)
	if err == nil {
		t.Fatal("expected error for illegal transition")
	}
	if got != FlowConfirmingOrder {
		t.Errorf("flow should be unchanged on illegal transition, got %s", got)
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession()
	if s.SessionID == "" {
		t.Error("expected a session id")
	}
	if s.UserType != UserTypeUnknown {
		t.Errorf("expected unknown user type, got %s", s.UserType)
	}
	if s.Registered {
		t.Error("new sessions must not be registered")
	}
	if s.Context.CurrentFlow != FlowIdle {
		t.Errorf("expected idle flow, got %s", s.Context.CurrentFlow)
	}
}
