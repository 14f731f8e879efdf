package orchestrator

// Reply is what a conversation turn produces for delivery.
type Reply struct {
	Type    string                 `json:"type"` // "text" or "image"
	Content string                 `json:"content"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// TextReply builds a plain text reply.
func TextReply(content string) Reply {
	return Reply{Type: ReplyTypeText, Content: content}
}

// ImageReply builds a reply carrying a generated image URL.
func ImageReply(caption, url string) Reply {
	return Reply{Type: ReplyTypeImage, Content: caption, Data: map[string]interface{}{"url": url}}
}

// Notifier pushes server-initiated replies (like the delayed payment
// confirmation) to a connected client. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Push(sessionID string, reply Reply)
}

type nopNotifier struct{}

func (nopNotifier) Push(string, Reply) {}
