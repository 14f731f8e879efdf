package http

import (
	"errors"
	"strings"

	"horticulture-assistant/internal/chat/orchestrator"
	"horticulture-assistant/internal/model"
)

var errTextRequired = errors.New("text is required")

type createSessionResp struct {
	SessionID string `json:"session_id"`
}

type sessionResp struct {
	SessionID  string                 `json:"session_id"`
	UserType   model.UserType         `json:"user_type"`
	Registered bool                   `json:"registered"`
	Name       string                 `json:"name,omitempty"`
	Flow       model.Flow             `json:"current_flow"`
	History    []model.HistoryMessage `json:"conversation_history"`
}

func newSessionResp(s model.Session) sessionResp {
	return sessionResp{
		SessionID:  s.SessionID,
		UserType:   s.UserType,
		Registered: s.Registered,
		Name:       s.Name,
		Flow:       s.Context.CurrentFlow,
		History:    s.History,
	}
}

type messageReq struct {
	Text string `json:"text"`
}

func (r *messageReq) validate() error {
	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		return errTextRequired
	}
	return nil
}

type messageResp struct {
	SessionID string                 `json:"session_id"`
	Type      string                 `json:"type"`
	Content   string                 `json:"content"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

func newMessageResp(sessionID string, r orchestrator.Reply) messageResp {
	return messageResp{SessionID: sessionID, Type: r.Type, Content: r.Content, Data: r.Data}
}

// WebSocket wire events.
const (
	wsEventSession  = "session"
	wsEventTyping   = "typing"
	wsEventResponse = "response"
	wsEventError    = "error"
)

type wsInbound struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
}

type wsEvent struct {
	Event   string                 `json:"event"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

func sessionEvent(id string) wsEvent {
	return wsEvent{Event: wsEventSession, Payload: map[string]interface{}{"session_id": id}}
}

func typingEvent(isTyping bool) wsEvent {
	return wsEvent{Event: wsEventTyping, Payload: map[string]interface{}{"isTyping": isTyping}}
}

func responseEvent(r orchestrator.Reply) wsEvent {
	return wsEvent{Event: wsEventResponse, Payload: map[string]interface{}{
		"type":    r.Type,
		"content": r.Content,
		"data":    r.Data,
	}}
}

func errorEvent(message string) wsEvent {
	return wsEvent{Event: wsEventError, Payload: map[string]interface{}{"message": message}}
}
