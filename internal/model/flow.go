package model

import "fmt"

// Flow is the conversation flow state.
type Flow string

const (
	FlowIdle                Flow = "idle"
	FlowRegistering         Flow = "registering"
	FlowOrdering            Flow = "ordering"
	FlowConfirmingOrder     Flow = "confirming_order"
	FlowAddingInventory     Flow = "adding_inventory"
	FlowConfirmingInventory Flow = "confirming_inventory"
	FlowQuerying            Flow = "querying"
)

// flowTransitions lists the legal next flows for each flow.
var flowTransitions = map[Flow][]Flow{
	FlowIdle:                {FlowRegistering, FlowOrdering, FlowAddingInventory, FlowQuerying},
	FlowRegistering:         {FlowIdle, FlowOrdering, FlowAddingInventory, FlowQuerying},
	FlowOrdering:            {FlowConfirmingOrder, FlowIdle},
	FlowConfirmingOrder:     {FlowIdle},
	FlowAddingInventory:     {FlowConfirmingInventory, FlowIdle},
	FlowConfirmingInventory: {FlowIdle},
	FlowQuerying:            {FlowIdle},
}

// CanTransition reports whether moving to the given flow is legal.
func (f Flow) CanTransition(to Flow) bool {
	for _, allowed := range flowTransitions[f] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition returns the new flow, or an error when the move is illegal.
func (f Flow) Transition(to Flow) (Flow, error) {
	if !f.CanTransition(to) {
		return f, fmt.Errorf("invalid flow transition: %s -> %s", f, to)
	}
	return to, nil
}

// Valid reports whether f is a known flow.
func (f Flow) Valid() bool {
	if f == FlowIdle {
		return true
	}
	_, ok := flowTransitions[f]
	return ok
}
