package orchestrator

import (
	"context"
	"strings"

	"horticulture-assistant/internal/intent"
	"horticulture-assistant/internal/model"
	"horticulture-assistant/pkg/llmprovider"
)

// ProcessTurn runs one conversation turn for the session. Failures past the
// session boundary degrade to a user-safe apology; the user message is always
// persisted first.
func (o *Orchestrator) ProcessTurn(ctx context.Context, sessionID, text string) (Reply, error) {
	sess, _, err := o.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}
	id := sess.SessionID

	if _, err := o.sessions.AppendMessage(ctx, id, "user", text); err != nil {
		return Reply{}, err
	}

	// Mid-registration fast path: a bare phone number completes registration
	// without an LLM round trip.
	if sess.Context.CurrentFlow == model.FlowRegistering && !sess.Registered {
		if phone := intent.ExtractPhone(text); phone != "" {
			return o.finishRegistration(ctx, sess, phone), nil
		}
	}

	det, err := o.detector.Detect(ctx, text)
	if err != nil {
		o.l.Warnf(ctx, "%s: session %s: classify: %v", logPrefixProcessTurn, id, err)
		det = intent.Detection{Intent: intent.GeneralChat}
	}
	o.l.Infof(ctx, "%s: session %s intent=%s", logPrefixProcessTurn, id, det.Intent)

	sess = o.applyFlow(ctx, sess, det)

	return o.runLoop(ctx, sess), nil
}

// finishRegistration registers the user with the phone they just sent, using
// whatever the session already knows about them.
func (o *Orchestrator) finishRegistration(ctx context.Context, sess model.Session, phone string) Reply {
	userType := string(model.UserTypeCustomer)
	if sess.Context.LastIntent == string(intent.RegistrationSupplier) {
		userType = string(model.UserTypeSupplier)
	}

	args := map[string]interface{}{"user_type": userType, "phone": phone}
	if sess.Name != "" {
		args["name"] = sess.Name
	}
	if sess.DefaultLocation != "" {
		args["location"] = sess.DefaultLocation
	}

	result := o.registry.Execute(ctx, toolRegisterUser, model.ScopeOf(sess), args)
	if result.Success {
		if _, err := o.sessions.Update(ctx, sess.SessionID, func(s *model.Session) error {
			s.Context.CurrentFlow = model.FlowIdle
			return nil
		}); err != nil {
			o.l.Errorf(ctx, "%s: session %s: reset flow: %v", logPrefixProcessTurn, sess.SessionID, err)
		}
	}
	return o.finish(ctx, sess.SessionID, TextReply(result.Message))
}

// applyFlow gates and advances the conversation flow for the detected intent,
// persisting the new flow and intent on the session.
func (o *Orchestrator) applyFlow(ctx context.Context, sess model.Session, det intent.Detection) model.Session {
	target, ok := flowForIntent(det.Intent)
	if !ok {
		target = sess.Context.CurrentFlow
	}

	// Transactional flows require registration; redirect to registering.
	if !sess.Registered && (target == model.FlowOrdering || target == model.FlowAddingInventory) {
		target = model.FlowRegistering
	}

	next := sess.Context.CurrentFlow
	switch {
	case target == next:
		// Staying put is always legal.
	case next.CanTransition(target):
		next = target
	case next.CanTransition(model.FlowIdle) && model.FlowIdle.CanTransition(target):
		// The previous flow was abandoned; route through idle.
		next = target
	}

	updated, err := o.sessions.Update(ctx, sess.SessionID, func(s *model.Session) error {
		s.Context.CurrentFlow = next
		s.Context.LastIntent = string(det.Intent)
		// Identity details extracted by the classifier seed the session so a
		// later bare-phone message can complete registration with them.
		if name, ok := det.Entities["name"].(string); ok && name != "" && s.Name == "" {
			s.Name = name
		}
		if loc, ok := det.Entities["location"].(string); ok && loc != "" && s.DefaultLocation == "" {
			s.DefaultLocation = loc
		}
		return nil
	})
	if err != nil {
		o.l.Errorf(ctx, "%s: session %s: persist flow: %v", logPrefixProcessTurn, sess.SessionID, err)
		return sess
	}
	return updated
}

// runLoop is the bounded reason-act loop: the model either answers in text or
// requests a tool, whose result is folded back in for the next step.
func (o *Orchestrator) runLoop(ctx context.Context, sess model.Session) Reply {
	id := sess.SessionID

	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: o.systemPrompt(sess)}},
		},
		Messages: o.historyMessages(ctx, id),
		Tools:    o.toolDeclarationsFor(sess),
	}

	var lastToolMsg string
	for step := 0; step < o.cfg.MaxToolIterations; step++ {
		resp, err := o.llm.GenerateContent(ctx, req)
		if err != nil {
			o.l.Errorf(ctx, "%s: session %s: llm step %d: %v", logPrefixProcessTurn, id, step+1, err)
			return o.finish(ctx, id, TextReply(msgApology))
		}

		calls, text := splitResponse(resp)
		if len(calls) == 0 {
			if strings.TrimSpace(text) != "" {
				return o.finish(ctx, id, TextReply(text))
			}
			// Blank turn: nudge the model to finalize and try again.
			req.Messages = append(req.Messages, llmprovider.Message{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: msgFinalizeNudge}},
			})
			continue
		}

		// The model may request several tools in one response; every call is
		// executed and folded back before the next step.
		callParts := make([]llmprovider.Part, 0, len(calls))
		resultParts := make([]llmprovider.Part, 0, len(calls))
		for _, call := range calls {
			o.l.Infof(ctx, "%s: session %s tool=%s", logPrefixProcessTurn, id, call.Name)
			result := o.registry.Execute(ctx, call.Name, model.ScopeOf(sess), call.Args)
			if result.Message != "" {
				lastToolMsg = result.Message
			}

			if result.Success {
				switch call.Name {
				case toolGenerateImage:
					if url := imageURLOf(result.Data); url != "" {
						return o.finish(ctx, id, ImageReply(result.Message, url))
					}
				case toolCreateOrder:
					o.schedulePaymentConfirmation(id, orderIDOf(result.Data))
				case toolRegisterUser:
					// Later steps need the registered identity in scope.
					if refreshed, err := o.sessions.Get(ctx, id); err == nil {
						sess = refreshed
					}
				}
			}

			callParts = append(callParts, llmprovider.Part{FunctionCall: call})
			resultParts = append(resultParts, llmprovider.Part{
				FunctionResponse: &llmprovider.FunctionResponse{Name: call.Name, Response: result},
			})
		}

		req.Messages = append(req.Messages,
			llmprovider.Message{Role: "model", Parts: callParts},
			llmprovider.Message{Role: "user", Parts: resultParts},
		)
	}

	o.l.Warnf(ctx, "%s: session %s: tool loop cap (%d) reached", logPrefixProcessTurn, id, o.cfg.MaxToolIterations)
	if strings.TrimSpace(lastToolMsg) != "" {
		return o.finish(ctx, id, TextReply(lastToolMsg))
	}
	return o.finish(ctx, id, TextReply(msgApology))
}

// finish appends the assistant reply to the session history and returns it.
func (o *Orchestrator) finish(ctx context.Context, sessionID string, reply Reply) Reply {
	if _, err := o.sessions.AppendMessage(ctx, sessionID, "assistant", reply.Content); err != nil {
		o.l.Errorf(ctx, "%s: session %s: persist reply: %v", logPrefixProcessTurn, sessionID, err)
	}
	return reply
}

// splitResponse returns every function call in the model's response, and its
// text when it did not call any tool.
func splitResponse(resp *llmprovider.Response) ([]*llmprovider.FunctionCall, string) {
	if resp == nil {
		return nil, ""
	}
	var calls []*llmprovider.FunctionCall
	var b strings.Builder
	for _, part := range resp.Content.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
			continue
		}
		b.WriteString(part.Text)
	}
	if len(calls) > 0 {
		return calls, ""
	}
	return nil, b.String()
}

// flowForIntent maps a classified intent to the flow it drives.
func flowForIntent(in intent.Intent) (model.Flow, bool) {
	switch in {
	case intent.RegistrationCustomer, intent.RegistrationSupplier:
		return model.FlowRegistering, true
	case intent.PlaceOrder:
		return model.FlowOrdering, true
	case intent.AddInventory:
		return model.FlowAddingInventory, true
	case intent.ProductInquiry, intent.KnowledgeQuery, intent.ImageGeneration,
		intent.CheckStock, intent.CheckSchedule, intent.FlashSaleCheck, intent.CheckCustomerOrders:
		return model.FlowQuerying, true
	case intent.GeneralChat:
		return model.FlowIdle, true
	}
	return model.FlowIdle, false
}

func imageURLOf(data interface{}) string {
	m, ok := data.(map[string]interface{})
	if !ok {
		return ""
	}
	url, _ := m["image_url"].(string)
	return url
}
