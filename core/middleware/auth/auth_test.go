package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/private", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestNew(t *testing.T) {
	app := setupApp(Config{
		ApiKey: "secret",
		Next:   func(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/health") },
	})

	tests := []struct {
		name   string
		path   string
		key    string
		status int
	}{
		{"Missing", "/private", "", fiber.StatusUnauthorized},
		{"Wrong", "/private", "nope", fiber.StatusUnauthorized},
		{"Valid", "/private", "secret", fiber.StatusOK},
		{"Skipped", "/health", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderName, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestNew_Disabled(t *testing.T) {
	resp, err := setupApp(Config{}).Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
