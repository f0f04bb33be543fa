package cmd

import (
	"bytes"
	"testing"

	"guardias/feature/health"
	"guardias/feature/health/checks"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintHealth(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	printHealth(&out, &health.Report{
		Status:    health.Unhealthy,
		Database:  health.ComponentReport{Status: health.StatusOK},
		Storage:   health.ComponentReport{Status: health.StatusError, Error: "bucket guardias does not exist"},
		Snapshots: []string{"fallback/guardia.csv"},
		Schema: &checks.SchemaReport{
			Matched: false,
			Tables: map[string]checks.TableReport{
				"reportes": {Status: "error", MissingColumns: []string{"hora_fin"}},
				"grupos":   {Status: "ok"},
			},
		},
	})

	text := out.String()
	assert.Contains(t, text, "Status:   unhealthy")
	assert.Contains(t, text, "Storage:  error bucket guardias does not exist")
	assert.Contains(t, text, "missing snapshot: fallback/guardia.csv")
	assert.Contains(t, text, "Table grupos: ok\nTable reportes: error\n  missing column: hora_fin")
}
