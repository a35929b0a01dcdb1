package chatHandler

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	bookingRepository "jusbook/internal/api/booking/repository"
	bookingService "jusbook/internal/api/booking/service"
	"jusbook/internal/api/chat"
	chatRepository "jusbook/internal/api/chat/repository"
	chatService "jusbook/internal/api/chat/service"
	"jusbook/internal/entity"
	"jusbook/internal/middleware"
	"jusbook/pkg/handlerUtil"
	"jusbook/pkg/nlp"
	"jusbook/pkg/utils"

	fastws "github.com/fasthttp/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	u := utils.New()
	bookings := bookingService.NewBookingService(logger,
		bookingRepository.New(logger, bookingRepository.DefaultSeed(time.Now(), 7)), u)
	store := chatRepository.NewMemoryStore(logger, chatRepository.StoreConfig{})
	svc := chatService.NewChatService(logger, store, bookings, nlp.NewProcessor(), u, nil)

	mw := middleware.New(logger, u, middleware.Config{})
	app := fiber.New(fiber.Config{
		JSONEncoder: jsoniter.Marshal,
		JSONDecoder: jsoniter.Unmarshal,
	})
	app.Use(mw.NewRequestIDMiddleware())
	New(logger, validator.New(), mw, svc).Start(app.Group("/api/v1"))

	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string, out interface{}) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test(%s %s) error = %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		raw, _ := io.ReadAll(resp.Body)
		if err := jsoniter.Unmarshal(raw, out); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp
}

func TestSendMessage(t *testing.T) {
	app := newTestApp(t)

	var got chat.ChatResponse
	resp := do(t, app, http.MethodPost, "/api/v1/chat", `{"message":"hello","session_id":"h1"}`, &got)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got.Intent != "greeting" || got.SessionID != "h1" || got.State != "idle" {
		t.Errorf("response = %+v", got)
	}
	if resp.Header.Get(middleware.RequestIDKey) == "" {
		t.Error("missing request id header")
	}
}

func TestSendMessageValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "missing message", body: `{"session_id":"v1"}`, wantStatus: fiber.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "malformed json", body: `{"message":`, wantStatus: fiber.StatusBadRequest, wantCode: "BAD_REQUEST"},
		{name: "too long", body: `{"message":"` + strings.Repeat("a", 1001) + `"}`, wantStatus: fiber.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
	}

	app := newTestApp(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got handlerUtil.ErrorResponse
			resp := do(t, app, http.MethodPost, "/api/v1/chat", tt.body, &got)
			if resp.StatusCode != tt.wantStatus || got.Code != tt.wantCode {
				t.Errorf("got %d %q, want %d %q", resp.StatusCode, got.Code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestEmptyMessageIsUnknown(t *testing.T) {
	app := newTestApp(t)

	var got chat.ChatResponse
	resp := do(t, app, http.MethodPost, "/api/v1/chat", `{"message":""}`, &got)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got.Intent != "unknown" || got.SessionID == "" {
		t.Errorf("response = %+v", got)
	}
}

func TestSessionEndpoints(t *testing.T) {
	app := newTestApp(t)

	do(t, app, http.MethodPost, "/api/v1/chat", `{"message":"I want to cancel my booking","session_id":"x1"}`, nil)

	var session chat.SessionResponse
	resp := do(t, app, http.MethodGet, "/api/v1/chat/sessions/x1", "", &session)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if session.State != "awaiting_fields" || session.PendingIntent != "cancel_booking" || session.TurnCount != 1 {
		t.Errorf("session = %+v", session)
	}

	resp = do(t, app, http.MethodDelete, "/api/v1/chat/sessions/x1", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("reset status = %d", resp.StatusCode)
	}

	do(t, app, http.MethodGet, "/api/v1/chat/sessions/x1", "", &session)
	if session.State != "idle" || session.TurnCount != 0 {
		t.Errorf("session after reset = %+v", session)
	}
}

func TestClassifyEndpoint(t *testing.T) {
	app := newTestApp(t)

	var got chat.ClassifyResponse
	resp := do(t, app, http.MethodPost, "/api/v1/chat/classify", `{"message":"Book slot SL0921"}`, &got)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got.Intent != "book_slot" || len(got.Entities) != 1 || got.Entities[0].Value != "SL0921" {
		t.Errorf("response = %+v", got)
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/v1/chat/ws", "", nil)
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusUpgradeRequired)
	}
}

type slowChat struct {
	chatService.IChatService
	delay time.Duration
}

func (s slowChat) ProcessMessage(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
	time.Sleep(s.delay)
	return &chat.ChatResponse{
		Reply:     "booked",
		SessionID: req.SessionID,
		Booking:   &entity.Booking{ID: "BK1A2B3C4D"},
	}, nil
}

func TestSendMessageAnswersPastDeadline(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mw := middleware.New(logger, utils.New(), middleware.Config{})
	h := New(logger, validator.New(), mw, slowChat{delay: 50 * time.Millisecond})
	h.messageTimeout = 5 * time.Millisecond

	app := fiber.New()
	h.Start(app.Group("/api/v1"))

	var got chat.ChatResponse
	resp := do(t, app, http.MethodPost, "/api/v1/chat", `{"message":"Alice Johnson, 9988776655","session_id":"slow"}`, &got)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got.Booking == nil || got.Booking.ID != "BK1A2B3C4D" {
		t.Errorf("booking = %+v", got.Booking)
	}
}

func dialChat(t *testing.T, query string) *fastws.Conn {
	t.Helper()

	app := newTestApp(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	conn, _, err := fastws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/api/v1/chat/ws"+query, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline() error = %v", err)
	}
	return conn
}

func exchange(t *testing.T, conn *fastws.Conn, frame interface{}, out interface{}) {
	t.Helper()

	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if err := conn.ReadJSON(out); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
}

func TestWebSocketRemembersSession(t *testing.T) {
	conn := dialChat(t, "")

	var first chat.ChatResponse
	exchange(t, conn, map[string]string{"message": "hello"}, &first)
	if first.Intent != "greeting" || first.SessionID == "" {
		t.Fatalf("first frame = %+v", first)
	}

	var second chat.ChatResponse
	exchange(t, conn, map[string]string{"message": "I want to cancel my booking"}, &second)
	if second.SessionID != first.SessionID {
		t.Errorf("session id changed from %q to %q", first.SessionID, second.SessionID)
	}
	if second.State != "awaiting_fields" || second.PendingIntent != "cancel_booking" {
		t.Errorf("second frame = %+v", second)
	}

	var invalid handlerUtil.ErrorResponse
	exchange(t, conn, map[string]string{"session_id": first.SessionID}, &invalid)
	if invalid.Code != "VALIDATION_ERROR" {
		t.Errorf("missing message code = %q", invalid.Code)
	}
}

func TestWebSocketSessionFromQuery(t *testing.T) {
	conn := dialChat(t, "?session_id=w1")

	var got chat.ChatResponse
	exchange(t, conn, map[string]string{"message": "hi"}, &got)
	if got.SessionID != "w1" {
		t.Errorf("SessionID = %q, want w1", got.SessionID)
	}
}
