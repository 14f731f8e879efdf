package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/chat/orchestrator"
	"horticulture-assistant/internal/intent"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/session"
	"horticulture-assistant/internal/session/memory"
	"horticulture-assistant/pkg/llmprovider"
	"horticulture-assistant/pkg/log"
)

type fixedLLM struct {
	text string
}

func (f fixedLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  "model",
		Parts: []llmprovider.Part{{Text: f.text}},
	}}, nil
}

type chatDetector struct{}

func (chatDetector) Detect(ctx context.Context, text string) (intent.Detection, error) {
	return intent.Detection{Intent: intent.GeneralChat}, nil
}

type nilMarket struct{ market.UseCase }

func newTestRouter(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := log.NewNop()
	sessions := session.NewManager(memory.New(100, time.Hour), session.Config{MaxHistory: 20}, logger)
	orch := orchestrator.New(fixedLLM{text: "Hello from the assistant."}, agent.NewRegistry(logger),
		sessions, chatDetector{}, nilMarket{}, orchestrator.Config{}, logger)

	h, _ := New(logger, orch, sessions)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), h)
	return router, sessions
}

type envelope struct {
	ErrorCode int                    `json:"error_code"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec.Code, env
}

func TestCreateAndGetSession(t *testing.T) {
	router, _ := newTestRouter(t)

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/sessions", "")
	if code != http.StatusOK {
		t.Fatalf("create status = %d", code)
	}
	id, _ := env.Data["session_id"].(string)
	if id == "" {
		t.Fatalf("missing session_id in %v", env.Data)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/v1/sessions/"+id, "")
	if code != http.StatusOK {
		t.Fatalf("get status = %d", code)
	}
	if env.Data["session_id"] != id {
		t.Errorf("session_id = %v", env.Data["session_id"])
	}
	if env.Data["registered"] != false {
		t.Errorf("registered = %v", env.Data["registered"])
	}

	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/sessions/does-not-exist", "")
	if code != http.StatusNotFound {
		t.Errorf("unknown session status = %d", code)
	}
}

func TestPostMessage(t *testing.T) {
	router, sessions := newTestRouter(t)

	sess, err := sessions.Create(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	code, env := doJSON(t, router, http.MethodPost,
		"/api/v1/sessions/"+sess.SessionID+"/messages", `{"text": "hi"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if env.Data["type"] != "text" || env.Data["content"] != "Hello from the assistant." {
		t.Errorf("reply = %v", env.Data)
	}
	if env.Data["session_id"] != sess.SessionID {
		t.Errorf("session_id = %v, want %s", env.Data["session_id"], sess.SessionID)
	}

	code, _ = doJSON(t, router, http.MethodPost,
		"/api/v1/sessions/"+sess.SessionID+"/messages", `{"text": "   "}`)
	if code != http.StatusBadRequest {
		t.Errorf("blank text status = %d", code)
	}
}

func TestPostMessage_UnknownIDKeepsContinuity(t *testing.T) {
	router, sessions := newTestRouter(t)

	for i := 0; i < 2; i++ {
		code, _ := doJSON(t, router, http.MethodPost,
			"/api/v1/sessions/client-minted-id/messages", `{"text": "hi"}`)
		if code != http.StatusOK {
			t.Fatalf("turn %d status = %d", i+1, code)
		}
	}

	sess, err := sessions.Get(context.Background(), "client-minted-id")
	if err != nil {
		t.Fatalf("session was not kept under the client id: %v", err)
	}
	// Two user turns and two assistant replies, all in one session.
	if len(sess.History) != 4 {
		t.Errorf("history length = %d, want 4", len(sess.History))
	}
}
