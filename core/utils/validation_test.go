package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type coverRequest struct {
	Guard  string `json:"profesor_guardia" validate:"required"`
	Absent string `json:"profesor_ausente" validate:"required"`
	Date   string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(coverRequest{Guard: "Ana", Absent: "Luis"}))
	assert.NoError(t, ValidateStruct(coverRequest{Guard: "Ana", Absent: "Luis", Date: "2026-02-12"}))

	err := ValidateStruct(coverRequest{Date: "12/02/2026"})
	assert.Error(t, err)
	assert.Equal(t, map[string]string{
		"profesor_guardia": "required",
		"profesor_ausente": "required",
		"fecha":            "datetime",
	}, InvalidFields(err))
}

func TestInvalidFields_NotValidationError(t *testing.T) {
	assert.Nil(t, InvalidFields(assert.AnError))
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2026-02-12"))
	assert.False(t, IsDate("2026-02-30"))
	assert.False(t, IsDate("12-02-2026"))
	assert.False(t, IsDate(""))
	assert.True(t, IsDate(Today()))
}
