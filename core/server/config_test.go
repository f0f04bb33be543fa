package server_test

import (
	"testing"

	"guardias/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Origins(t *testing.T) {
	tests := []struct {
		name    string
		origins string
		want    string
	}{
		{"Wildcard", "*", "*"},
		{"Empty", "", "*"},
		{"Blank entries", " , ", "*"},
		{"List", "http://localhost:5173, http://127.0.0.1:5500", "http://localhost:5173,http://127.0.0.1:5500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{CorsOrigins: tt.origins}
			assert.Equal(t, tt.want, c.Origins())
		})
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":3000", server.Config{Port: "3000"}.Address())
	assert.Equal(t, ":8080", server.Config{Port: ":8080"}.Address())
}
