package docs

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCatalogue(t *testing.T) {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/api/sample", ok)
	app.Post("/api/cubrir-ausencia", ok)
	app.Get("/swagger/*", ok)

	f := NewFeature("guardias", "1.0", []string{"csv", "sample"})
	require.NoError(t, f.Load(app))
	assert.Equal(t, "docs", f.Name())
	assert.True(t, f.IsEnabled())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/docs", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body Catalogue
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "guardias", body.Name)
	assert.Equal(t, []string{"csv", "sample"}, body.Sources)
	assert.Equal(t, []Endpoint{
		{Method: "POST", Path: "/api/cubrir-ausencia"},
		{Method: "GET", Path: "/api/sample"},
		{Method: "GET", Path: "/api/v1/docs"},
	}, body.Endpoints)
}
