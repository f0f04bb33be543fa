package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"guardias/core/feed"
	"guardias/core/reconcile"
	"guardias/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Endpoints of the document-store REST API, tried in order.
var (
	absenceEndpoints = []string{"/api/ausencias", "/ausencias"}
	teacherEndpoints = []string{"/api/profesores", "/profesores"}
)

type document map[string]any

// DocstoreSource reads absences and the teacher roster from the document-store REST API.
// Every teacher is offered as a substitute in every teaching period they are not absent from.
type DocstoreSource struct {
	fetcher feed.Fetcher
	baseURL string
	logger  *zap.Logger
}

// NewDocstoreSource creates the "mongo" source.
func NewDocstoreSource(fetcher feed.Fetcher, baseURL string, logger *zap.Logger) *DocstoreSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocstoreSource{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (s *DocstoreSource) Name() string {
	return "mongo"
}

// Load fetches the day's absences and the roster concurrently. Fetch errors are
// logged and read as empty; when nothing at all comes back the sample dataset is served.
func (s *DocstoreSource) Load(ctx context.Context, q Query) (*Batch, error) {
	date := q.Date
	if date == "" {
		date = utils.Today()
	}

	var (
		absences    []document
		teachers    []document
		absenceErr  error
		teacherErr  error
		absencePath string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		absences, absencePath, absenceErr = s.fetchAbsences(gctx, date)
		return nil
	})
	g.Go(func() error {
		teachers, teacherErr = s.fetchTeachers(gctx)
		return nil
	})
	_ = g.Wait()

	if absenceErr != nil {
		s.logger.Warn("Failed to fetch absences", zap.String("url", s.baseURL), zap.Error(absenceErr))
	}
	if teacherErr != nil {
		s.logger.Warn("Failed to fetch teachers", zap.String("url", s.baseURL), zap.Error(teacherErr))
	}

	b := newBatch()
	b.Meta["origin"] = "docstore"
	b.Meta["api_url"] = s.baseURL
	b.Meta["date"] = date

	if len(absences) == 0 && len(teachers) == 0 {
		b.Rows = SampleRows()
		b.Meta["fallback"] = true
		if err := errors.Join(absenceErr, teacherErr); err != nil {
			b.Meta["error"] = err.Error()
		}
		return b, nil
	}

	for _, doc := range absences {
		b.Rows = append(b.Rows, reconcile.Row{
			Kind:      reconcile.KindAbsence,
			Teacher:   absenceTeacher(doc),
			Classroom: firstString(doc, "grupo", "aula"),
			Period:    firstString(doc, "hora", "hora_inicio"),
			Date:      date,
		})
	}

	roster := make([]string, 0, len(teachers))
	for _, doc := range teachers {
		roster = append(roster, reconcile.FullName(stringField(doc, "nombre"), stringField(doc, "apellidos"), ""))
	}

	b.Options = reconcile.Options{Dedup: true, CrossFilter: true, Roster: roster}
	b.Meta["fallback"] = false
	b.Meta["absences"] = len(absences)
	b.Meta["teachers"] = len(teachers)
	b.Meta["endpoint"] = absencePath
	return b, nil
}

// fetchAbsences keeps the absences dated date. The next endpoint is tried when one
// fails or has nothing for that date.
func (s *DocstoreSource) fetchAbsences(ctx context.Context, date string) ([]document, string, error) {
	var errs []error
	for _, path := range absenceEndpoints {
		docs, err := s.fetchDocuments(ctx, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		matched := make([]document, 0, len(docs))
		for _, doc := range docs {
			if stringField(doc, "fecha") == date {
				matched = append(matched, doc)
			}
		}
		s.logger.Debug("Fetched absences",
			zap.String("endpoint", path),
			zap.Int("total", len(docs)),
			zap.Int("matched", len(matched)))
		if len(matched) > 0 {
			return matched, path, nil
		}
	}
	return nil, "", errors.Join(errs...)
}

func (s *DocstoreSource) fetchTeachers(ctx context.Context) ([]document, error) {
	var errs []error
	for _, path := range teacherEndpoints {
		docs, err := s.fetchDocuments(ctx, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return docs, nil
	}
	return nil, errors.Join(errs...)
}

func (s *DocstoreSource) fetchDocuments(ctx context.Context, path string) ([]document, error) {
	body, err := s.fetcher.Fetch(ctx, s.baseURL+path)
	if err != nil {
		return nil, err
	}
	return decodeDocuments(body)
}

// decodeDocuments accepts a bare array or an object wrapping it under "data".
func decodeDocuments(body []byte) ([]document, error) {
	var docs []document
	if err := json.Unmarshal(body, &docs); err == nil {
		return docs, nil
	}
	var wrapped struct {
		Data []document `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return wrapped.Data, nil
}

// absenceTeacher resolves the absent teacher from a nested name object, a flat
// string or split profesor_nombre/profesor_apellidos fields.
func absenceTeacher(doc document) string {
	switch p := doc["profesor"].(type) {
	case map[string]any:
		return reconcile.FullName(stringField(p, "nombre"), stringField(p, "apellidos"), "")
	case string:
		return reconcile.FullName("", "", strings.TrimSpace(p))
	}
	return reconcile.FullName(stringField(doc, "profesor_nombre"), stringField(doc, "profesor_apellidos"), "")
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	switch v.(type) {
	case map[string]any, []any:
		return ""
	}
	return strings.TrimSpace(utils.ToString(v))
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := stringField(m, k); v != "" {
			return v
		}
	}
	return ""
}
