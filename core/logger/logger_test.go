package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"Debug console", Config{Level: "debug", Format: "console"}},
		{"Info json", Config{Level: "info", Format: "json"}},
		{"Unknown level", Config{Level: "loud", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestMiddleware_LogsRayID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("ray_id", "ray-123")
		return c.Next()
	})
	app.Use(Middleware(l))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	entries := logs.FilterMessage("Request processed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ray-123", entries[0].ContextMap()["ray_id"])
	assert.Equal(t, "/ping", entries[0].ContextMap()["path"])
}
