package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/intent"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
	"horticulture-assistant/internal/session"
	"horticulture-assistant/internal/session/memory"
	"horticulture-assistant/pkg/llmprovider"
	"horticulture-assistant/pkg/log"
)

type scriptedLLM struct {
	mu        sync.Mutex
	responses []*llmprovider.Response
	calls     int
}

func (s *scriptedLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.responses) == 0 {
		return nil, errors.New("script exhausted")
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

func textResp(text string) *llmprovider.Response {
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  "model",
		Parts: []llmprovider.Part{{Text: text}},
	}}
}

func callResp(name string, args map[string]interface{}) *llmprovider.Response {
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  "model",
		Parts: []llmprovider.Part{{FunctionCall: &llmprovider.FunctionCall{Name: name, Args: args}}},
	}}
}

func multiCallResp(names ...string) *llmprovider.Response {
	parts := make([]llmprovider.Part, len(names))
	for i, name := range names {
		parts[i] = llmprovider.Part{FunctionCall: &llmprovider.FunctionCall{Name: name, Args: map[string]interface{}{}}}
	}
	return &llmprovider.Response{Content: llmprovider.Message{Role: "model", Parts: parts}}
}

type stubDetector struct {
	det intent.Detection
}

func (d stubDetector) Detect(ctx context.Context, text string) (intent.Detection, error) {
	return d.det, nil
}

type stubTool struct {
	name string
	fn   func(sc model.Scope, args map[string]interface{}) agent.Result
}

func (t stubTool) Name() string        { return t.name }
func (t stubTool) Description() string { return t.name }
func (t stubTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (t stubTool) Execute(ctx context.Context, sc model.Scope, args map[string]interface{}) (agent.Result, error) {
	return t.fn(sc, args), nil
}

type stubMarket struct {
	confirmed chan string
}

func (m *stubMarket) RegisterUser(ctx context.Context, in market.RegisterUserInput) (market.RegisterUserOutput, error) {
	return market.RegisterUserOutput{}, nil
}
func (m *stubMarket) GetUserByPhone(ctx context.Context, phone string) (market.User, error) {
	return market.User{}, market.ErrNotFound
}
func (m *stubMarket) ListProducts(ctx context.Context) ([]market.Product, error) { return nil, nil }
func (m *stubMarket) SearchCatalog(ctx context.Context, query string) ([]market.ProductListing, error) {
	return nil, nil
}
func (m *stubMarket) ResolveProduct(ctx context.Context, name string, threshold float64) (market.ProductMatch, error) {
	return market.ProductMatch{}, market.ErrNotFound
}
func (m *stubMarket) PlaceOrder(ctx context.Context, in market.PlaceOrderInput) (market.OrderReceipt, error) {
	return market.OrderReceipt{}, nil
}
func (m *stubMarket) CustomerOrders(ctx context.Context, customerID, status string, from, to *time.Time) ([]market.OrderSummary, error) {
	return nil, nil
}
func (m *stubMarket) ConfirmOrder(ctx context.Context, orderID string) error {
	m.confirmed <- orderID
	return nil
}
func (m *stubMarket) AddStock(ctx context.Context, in market.AddStockInput) (market.AddStockOutput, error) {
	return market.AddStockOutput{}, nil
}
func (m *stubMarket) SupplierStock(ctx context.Context, supplierID string) ([]market.StockItem, error) {
	return nil, nil
}
func (m *stubMarket) ExpiringStock(ctx context.Context, supplierID string, withinDays int) ([]market.StockItem, error) {
	return nil, nil
}
func (m *stubMarket) SupplierSchedule(ctx context.Context, supplierID string, start, end time.Time) ([]market.ScheduleEntry, error) {
	return nil, nil
}
func (m *stubMarket) PricingInsights(ctx context.Context, p market.Product) (market.PricingInsight, error) {
	return market.PricingInsight{}, nil
}
func (m *stubMarket) SuggestFlashSales(ctx context.Context, supplierID string, days int) ([]market.FlashSaleSuggestion, error) {
	return nil, nil
}

type chanNotifier struct {
	pushed chan Reply
}

func (n *chanNotifier) Push(sessionID string, reply Reply) { n.pushed <- reply }

type testEnv struct {
	orch     *Orchestrator
	sessions *session.Manager
	llm      *scriptedLLM
	market   *stubMarket
	notifier *chanNotifier
}

func newEnv(t *testing.T, llm *scriptedLLM, det intent.Detection, tools ...agent.Tool) *testEnv {
	t.Helper()
	logger := log.NewNop()
	sessions := session.NewManager(memory.New(100, time.Hour), session.Config{MaxHistory: 20}, logger)

	registry := agent.NewRegistry(logger)
	for _, tool := range tools {
		registry.Register(tool)
	}

	mkt := &stubMarket{confirmed: make(chan string, 1)}
	notifier := &chanNotifier{pushed: make(chan Reply, 1)}

	orch := New(llm, registry, sessions, stubDetector{det: det}, mkt,
		Config{MaxToolIterations: 3, PaymentDelay: 10 * time.Millisecond}, logger)
	orch.SetNotifier(notifier)

	return &testEnv{orch: orch, sessions: sessions, llm: llm, market: mkt, notifier: notifier}
}

func (e *testEnv) newSession(t *testing.T, mutate func(*model.Session)) string {
	t.Helper()
	sess, err := e.sessions.Create(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if mutate != nil {
		if _, err := e.sessions.Update(context.Background(), sess.SessionID, func(s *model.Session) error {
			mutate(s)
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}
	return sess.SessionID
}

func (e *testEnv) history(t *testing.T, id string) []model.HistoryMessage {
	t.Helper()
	sess, err := e.sessions.Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	return sess.History
}

func TestProcessTurn_TextReply(t *testing.T) {
	llm := &scriptedLLM{responses: []*llmprovider.Response{textResp("Hello! How can I help?")}}
	env := newEnv(t, llm, intent.Detection{Intent: intent.GeneralChat})
	id := env.newSession(t, nil)

	reply, err := env.orch.ProcessTurn(context.Background(), id, "hi")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Type != ReplyTypeText || reply.Content != "Hello! How can I help?" {
		t.Fatalf("reply = %+v", reply)
	}

	history := env.history(t, id)
	if len(history) != 2 {
		t.Fatalf("history length = %d", len(history))
	}
	if history[0].Role != "user" || history[0].Content != "hi" {
		t.Errorf("history[0] = %+v", history[0])
	}
	if history[1].Role != "assistant" || history[1].Content != reply.Content {
		t.Errorf("history[1] = %+v", history[1])
	}
}

func TestProcessTurn_BoundedLoopRepeatedCalls(t *testing.T) {
	// The model keeps requesting the same tool; the loop must cap at
	// MaxToolIterations and fall back to the last tool message.
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		callResp("search_products", map[string]interface{}{"query": "tomato"}),
	}}
	search := stubTool{name: "search_products", fn: func(sc model.Scope, args map[string]interface{}) agent.Result {
		return agent.OK(nil, "Found 1 products:\nTomato: 50.00kg available at 28.00 ETB/kg")
	}}
	env := newEnv(t, llm, intent.Detection{Intent: intent.ProductInquiry}, search)
	id := env.newSession(t, nil)

	reply, err := env.orch.ProcessTurn(context.Background(), id, "any tomatoes?")
	if err != nil {
		t.Fatal(err)
	}
	if llm.calls != 3 {
		t.Errorf("llm calls = %d, want 3", llm.calls)
	}
	if !strings.Contains(reply.Content, "Found 1 products") {
		t.Errorf("reply = %q", reply.Content)
	}
}

func TestProcessTurn_ParallelToolCalls(t *testing.T) {
	// One model response carrying two function calls; both must execute
	// before the next step.
	var executed []string
	record := func(name string) stubTool {
		return stubTool{name: name, fn: func(sc model.Scope, args map[string]interface{}) agent.Result {
			executed = append(executed, name)
			return agent.OK(nil, name+" done")
		}}
	}
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		multiCallResp("search_products", "get_pricing_insights"),
		textResp("Tomatoes are in stock; I'd price them at 28 ETB/kg."),
	}}
	env := newEnv(t, llm, intent.Detection{Intent: intent.ProductInquiry},
		record("search_products"), record("get_pricing_insights"))
	id := env.newSession(t, nil)

	reply, err := env.orch.ProcessTurn(context.Background(), id, "tomato stock and price?")
	if err != nil {
		t.Fatal(err)
	}
	if len(executed) != 2 || executed[0] != "search_products" || executed[1] != "get_pricing_insights" {
		t.Fatalf("executed = %v, want both calls in order", executed)
	}
	if llm.calls != 2 {
		t.Errorf("llm calls = %d, want 2", llm.calls)
	}
	if !strings.Contains(reply.Content, "28 ETB/kg") {
		t.Errorf("reply = %q", reply.Content)
	}
}

func TestProcessTurn_NoBlankReply(t *testing.T) {
	llm := &scriptedLLM{responses: []*llmprovider.Response{textResp("")}}
	env := newEnv(t, llm, intent.Detection{Intent: intent.GeneralChat})
	id := env.newSession(t, nil)

	reply, err := env.orch.ProcessTurn(context.Background(), id, "…")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(reply.Content) == "" {
		t.Fatal("blank reply escaped the orchestrator")
	}
	if reply.Content != msgApology {
		t.Errorf("reply = %q", reply.Content)
	}
}

func TestProcessTurn_RegistrationGate(t *testing.T) {
	llm := &scriptedLLM{responses: []*llmprovider.Response{textResp("Happy to help! First I need your phone number to register you.")}}
	env := newEnv(t, llm, intent.Detection{Intent: intent.PlaceOrder})
	id := env.newSession(t, nil)

	if _, err := env.orch.ProcessTurn(context.Background(), id, "I want 5kg of tomatoes"); err != nil {
		t.Fatal(err)
	}

	sess, err := env.sessions.Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Context.CurrentFlow != model.FlowRegistering {
		t.Errorf("flow = %s, want %s", sess.Context.CurrentFlow, model.FlowRegistering)
	}
	if sess.Context.LastIntent != string(intent.PlaceOrder) {
		t.Errorf("last intent = %s", sess.Context.LastIntent)
	}
}

func TestProcessTurn_RegistrationFastPath(t *testing.T) {
	var gotArgs map[string]interface{}
	register := stubTool{name: "register_user", fn: func(sc model.Scope, args map[string]interface{}) agent.Result {
		gotArgs = args
		return agent.OK(map[string]interface{}{"user_id": "u1"},
			"Registration complete. Welcome Abebe! You are registered as a supplier.")
	}}
	llm := &scriptedLLM{}
	env := newEnv(t, llm, intent.Detection{Intent: intent.GeneralChat}, register)
	id := env.newSession(t, func(s *model.Session) {
		s.Context.CurrentFlow = model.FlowRegistering
		s.Context.LastIntent = string(intent.RegistrationSupplier)
		s.Name = "Abebe"
	})

	reply, err := env.orch.ProcessTurn(context.Background(), id, "0911234567")
	if err != nil {
		t.Fatal(err)
	}
	if llm.calls != 0 {
		t.Errorf("llm calls = %d, want 0", llm.calls)
	}
	if gotArgs["phone"] != "0911234567" || gotArgs["user_type"] != "supplier" || gotArgs["name"] != "Abebe" {
		t.Errorf("register args = %v", gotArgs)
	}
	if !strings.Contains(reply.Content, "Registration complete") {
		t.Errorf("reply = %q", reply.Content)
	}

	sess, _ := env.sessions.Get(context.Background(), id)
	if sess.Context.CurrentFlow != model.FlowIdle {
		t.Errorf("flow = %s, want idle", sess.Context.CurrentFlow)
	}
}

func TestProcessTurn_ClassifierEntitiesSeedRegistration(t *testing.T) {
	// Name and location extracted on the first turn must survive on the
	// session so the bare-phone fast path registers with them.
	var gotArgs map[string]interface{}
	register := stubTool{name: "register_user", fn: func(sc model.Scope, args map[string]interface{}) agent.Result {
		gotArgs = args
		return agent.OK(nil, "Registration complete. Welcome Chaltu!")
	}}
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		textResp("Great, what's your phone number?"),
	}}
	env := newEnv(t, llm, intent.Detection{
		Intent: intent.RegistrationSupplier,
		Entities: map[string]interface{}{
			"name":     "Chaltu Bekele",
			"location": "Adama",
		},
	}, register)
	id := env.newSession(t, nil)

	if _, err := env.orch.ProcessTurn(context.Background(), id, "I'm Chaltu Bekele, a supplier in Adama"); err != nil {
		t.Fatal(err)
	}

	sess, err := env.sessions.Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Name != "Chaltu Bekele" || sess.DefaultLocation != "Adama" {
		t.Fatalf("session identity = %q / %q", sess.Name, sess.DefaultLocation)
	}
	if sess.Context.CurrentFlow != model.FlowRegistering {
		t.Fatalf("flow = %s", sess.Context.CurrentFlow)
	}

	if _, err := env.orch.ProcessTurn(context.Background(), id, "0922334455"); err != nil {
		t.Fatal(err)
	}
	if gotArgs["phone"] != "0922334455" || gotArgs["name"] != "Chaltu Bekele" || gotArgs["location"] != "Adama" {
		t.Errorf("register args = %v", gotArgs)
	}
}

func TestProcessTurn_ImageShortCircuit(t *testing.T) {
	imageTool := stubTool{name: "generate_product_image", fn: func(sc model.Scope, args map[string]interface{}) agent.Result {
		return agent.OK(map[string]interface{}{
			"image_url":    "/static/images/tomato_1700000000.png",
			"product_name": "Tomato",
		}, "Image generated for Tomato: /static/images/tomato_1700000000.png")
	}}
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		callResp("generate_product_image", map[string]interface{}{"product_name": "tomato"}),
	}}
	env := newEnv(t, llm, intent.Detection{Intent: intent.ImageGeneration}, imageTool)
	id := env.newSession(t, nil)

	reply, err := env.orch.ProcessTurn(context.Background(), id, "photo of a tomato please")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Type != ReplyTypeImage {
		t.Fatalf("reply type = %s", reply.Type)
	}
	if reply.Data["url"] != "/static/images/tomato_1700000000.png" {
		t.Errorf("url = %v", reply.Data["url"])
	}
	if llm.calls != 1 {
		t.Errorf("llm calls = %d, want 1", llm.calls)
	}
}

func TestProcessTurn_DelayedPaymentConfirmation(t *testing.T) {
	order := stubTool{name: "create_order", fn: func(sc model.Scope, args map[string]interface{}) agent.Result {
		return agent.OK(market.OrderReceipt{OrderID: "ORD-7", TotalAmount: 150},
			"Order confirmed! 🎉\nOrder ID: ORD-7")
	}}
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		callResp("create_order", map[string]interface{}{}),
		textResp("Your order ORD-7 is placed. Payment is cash on delivery."),
	}}
	env := newEnv(t, llm, intent.Detection{Intent: intent.PlaceOrder}, order)
	id := env.newSession(t, func(s *model.Session) {
		s.Registered = true
		s.UserID = "u1"
		s.UserType = model.UserTypeCustomer
	})

	reply, err := env.orch.ProcessTurn(context.Background(), id, "order 5kg tomato for tomorrow to Bole")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Type != ReplyTypeText {
		t.Fatalf("reply type = %s", reply.Type)
	}

	select {
	case orderID := <-env.market.confirmed:
		if orderID != "ORD-7" {
			t.Errorf("confirmed order = %s", orderID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("order was never confirmed")
	}

	select {
	case pushed := <-env.notifier.pushed:
		if !strings.Contains(pushed.Content, "Payment confirmed for order ORD-7") {
			t.Errorf("pushed = %q", pushed.Content)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("payment confirmation was never pushed")
	}

	history := env.history(t, id)
	last := history[len(history)-1]
	if last.Role != "assistant" || !strings.Contains(last.Content, "Payment confirmed") {
		t.Errorf("last history entry = %+v", last)
	}
}
