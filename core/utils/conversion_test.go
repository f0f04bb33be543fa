package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"nil", nil, 0},
		{"int", 4, 4},
		{"int64", int64(6), 6},
		{"float", 3.0, 3},
		{"string", " 2 ", 2},
		{"bytes", []byte("5"), 5},
		{"garbage", "tercera", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "1ª Hora", "1ª Hora"},
		{"bytes", []byte("08:15:00"), "08:15:00"},
		{"whole float", float64(3), "3"},
		{"fraction", 2.5, "2.5"},
		{"int", 6, "6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}
