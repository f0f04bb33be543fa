package cmd

import (
	"net/http/httptest"
	"testing"

	"guardias/core/config"
	"guardias/core/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewApp(t *testing.T) {
	d := &deps{
		cfg:    &config.Config{Server: server.Config{Port: "3000", ApiKey: "secret", CorsOrigins: "*"}},
		logger: zap.NewNop(),
	}

	app, err := newApp(d)
	require.NoError(t, err)

	status := func(url, key string) int {
		req := httptest.NewRequest("GET", url, nil)
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 200, status("/api/v1/health", ""))
	assert.Equal(t, 200, status("/api/v1/docs", ""))
	assert.Equal(t, 401, status("/api/sample", ""))
	assert.Equal(t, 401, status("/api/sample", "wrong"))
	assert.Equal(t, 200, status("/api/sample", "secret"))
	assert.Equal(t, 200, status("/api/coberturas", "secret"))
	assert.Equal(t, 200, status("/api/profesores", "secret"))
	assert.Equal(t, 503, status("/api/v1/ausencias", "secret"))
	assert.Equal(t, 503, status("/api/mysql", "secret"))
	assert.Equal(t, 404, status("/api/unknown", "secret"))
}
