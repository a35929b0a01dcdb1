package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"jusbook/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func newTestMiddleware(cfg Config) Middleware {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger, utils.New(), cfg)
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddleware(Config{})
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	generated := resp.Header.Get(RequestIDKey)
	if len(generated) != 26 {
		t.Errorf("generated request id = %q, want a ULID", generated)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDKey, "given-id")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "given-id" {
		t.Errorf("request id = %q, want given-id", body)
	}
}

func TestRateLimiter(t *testing.T) {
	m := newTestMiddleware(Config{RequestsPerSecond: 0.001, Burst: 2})
	app := fiber.New()
	app.Get("/", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		codes = append(codes, resp.StatusCode)
	}

	if codes[0] != 200 || codes[1] != 200 || codes[2] != fiber.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}
}

func TestSanitizeRequestBody(t *testing.T) {
	got := sanitizeRequestBody([]byte(`{"message":"Alice Johnson, 9988776655","contact":"998-877-6655","session_id":"abc"}`))

	if strings.Contains(got, "9988776655") || strings.Contains(got, "998-877") {
		t.Errorf("sanitizeRequestBody leaked a phone number: %s", got)
	}
	if !strings.Contains(got, "Alice Johnson") || !strings.Contains(got, "6655") || !strings.Contains(got, `"abc"`) {
		t.Errorf("sanitizeRequestBody removed too much: %s", got)
	}
	if sanitizeRequestBody([]byte("not json")) != "[non-JSON body]" {
		t.Error("non JSON bodies should be replaced")
	}
}
