package session

const (
	// DefaultMaxHistory is the conversation history window per session.
	DefaultMaxHistory = 20

	sessionManagerLogPrefix = "session.manager"
)
