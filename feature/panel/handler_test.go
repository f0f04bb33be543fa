package panel

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"guardias/core/reconcile"
	"guardias/feature/sources"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingSource struct{}

func (failingSource) Name() string { return "broken" }

func (failingSource) Load(context.Context, sources.Query) (*sources.Batch, error) {
	return nil, sources.ErrFeedUnavailable
}

func setupTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	registry := sources.NewRegistry(sources.SampleSource{}, sources.NewMySQLSource(nil), failingSource{})
	svc := NewService(registry, reconcile.NewMemoryStore(), zap.NewNop())
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

type panelBody struct {
	Source  string             `json:"source"`
	Periods []reconcile.Bucket `json:"periods"`
	Summary reconcile.Summary  `json:"summary"`
	Meta    map[string]any     `json:"meta"`
}

func getPanel(t *testing.T, app *fiber.App, url string) panelBody {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body panelBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func postCover(t *testing.T, app *fiber.App, payload string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/cubrir-ausencia", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleGetPanel(t *testing.T) {
	app, _ := setupTestApp(t)

	body := getPanel(t, app, "/api/sample")
	assert.Equal(t, "sample", body.Source)
	require.Len(t, body.Periods, 7)
	assert.Equal(t, reconcile.First, body.Periods[0].Period)
	assert.Equal(t, reconcile.Recess, body.Periods[3].Period)
	assert.Equal(t, reconcile.Summary{Absences: 2, Covered: 0, Available: 4}, body.Summary)
	assert.Equal(t, "sample", body.Meta["origin"])
}

func TestHandleGetPanel_Errors(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"InvalidDate", "/api/sample?fecha=12-02-2026", 400},
		{"UnknownSource", "/api/oracle", 404},
		{"NoDatabase", "/api/mysql", 503},
		{"SourceFailure", "/api/broken", 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestHandleCover(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := postCover(t, app, `{"profesor_guardia":"Juan Pérez","profesor_ausente":"Marta Sanchez","hora":1,"fecha":"2026-02-12"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Juan Pérez covers Marta Sanchez during 1ª Hora", body["message"])

	assignment := body["assignment"].(map[string]any)
	assert.Equal(t, "1ª Hora", assignment["period"])
	assert.NotEmpty(t, assignment["id"])

	panel := getPanel(t, app, "/api/sample")
	first := panel.Periods[0]
	require.Len(t, first.Absences, 1)
	assert.True(t, first.Absences[0].Covered)
	require.NotNil(t, first.Absences[0].CoveredBy)
	assert.Equal(t, "Juan Pérez", *first.Absences[0].CoveredBy)
	assert.Equal(t, []string{"Ana García"}, first.Available)
	assert.Equal(t, 1, panel.Summary.Covered)

	listResp, err := app.Test(httptest.NewRequest("GET", "/api/coberturas", nil))
	require.NoError(t, err)
	var list map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Equal(t, float64(1), list["count"])
}

func TestHandleCover_UnknownAbsenceIsKept(t *testing.T) {
	app, svc := setupTestApp(t)

	status, _ := postCover(t, app, `{"profesor_guardia":"Ana García","profesor_ausente":"Nadie","hora":"1ª Hora"}`)
	assert.Equal(t, 200, status)

	panel := getPanel(t, app, "/api/sample")
	assert.False(t, panel.Periods[0].Absences[0].Covered)
	assert.Equal(t, []string{"Juan Pérez"}, panel.Periods[0].Available)
	assert.Len(t, svc.Assignments(), 1)
}

func TestHandleCover_Validation(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := postCover(t, app, `{"profesor_guardia":"","fecha":"ayer"}`)
	assert.Equal(t, 400, status)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "required", fields["profesor_guardia"])
	assert.Equal(t, "required", fields["profesor_ausente"])
	assert.Equal(t, "datetime", fields["fecha"])

	status, _ = postCover(t, app, `{not json`)
	assert.Equal(t, 400, status)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(sources.NewRegistry(sources.SampleSource{}), reconcile.NewMemoryStore(), zap.NewNop())

	assert.Equal(t, "panel", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
}
