package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(key string) *fiber.App {
	app := fiber.New()
	app.Post("/drop", DropKeyMiddleware(key), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestDropKeyMiddleware(t *testing.T) {
	app := newTestApp("secret-key")

	tests := []struct {
		name   string
		header string
		value  string
		status int
	}{
		{"valid api key header", "X-Api-Key", "secret-key", fiber.StatusOK},
		{"valid bearer token", "Authorization", "Bearer secret-key", fiber.StatusOK},
		{"wrong key", "X-Api-Key", "not-the-key", fiber.StatusUnauthorized},
		{"wrong bearer token", "Authorization", "Bearer nope", fiber.StatusUnauthorized},
		{"missing key", "", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/drop", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestDropKeyMiddleware_NoKeyConfigured(t *testing.T) {
	app := newTestApp("")

	req := httptest.NewRequest("POST", "/drop", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want open ingest when no key is configured", resp.StatusCode)
	}
}
