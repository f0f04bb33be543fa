package cors

import (
	"net/http/httptest"
	"testing"

	"guardias/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Preflight(t *testing.T) {
	app := fiber.New()
	app.Use(New(server.Config{CorsOrigins: "*"}))
	app.Get("/api/csv", func(c *fiber.Ctx) error { return c.SendStatus(200) })

	req := httptest.NewRequest("OPTIONS", "/api/csv", nil)
	req.Header.Set("Origin", "http://192.168.1.20:5500")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
