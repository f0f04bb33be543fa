package panel

import (
	"context"
	"fmt"
	"time"

	"guardias/core/reconcile"
	"guardias/feature/sources"

	"go.uber.org/zap"
)

// Result is the reconciled panel for one source.
type Result struct {
	ElapsedMS int64              `json:"elapsed_ms"`
	Source    string             `json:"source"`
	Date      string             `json:"date,omitempty"`
	Periods   *reconcile.Buckets `json:"periods"`
	Summary   reconcile.Summary  `json:"summary"`
	Meta      map[string]any     `json:"meta"`
}

// CoverRequest records a substitute taking over an absent teacher's class.
type CoverRequest struct {
	Substitute    string `json:"profesor_guardia" validate:"required"`
	AbsentTeacher string `json:"profesor_ausente" validate:"required"`
	// Hour is any label the normalizer understands, or a bare number.
	Hour any    `json:"hora"`
	Date string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

// Service builds panels and keeps the coverage log.
type Service struct {
	sources *sources.Registry
	store   reconcile.Store
	logger  *zap.Logger
}

// NewService creates a new panel service.
func NewService(registry *sources.Registry, store reconcile.Store, logger *zap.Logger) *Service {
	return &Service{
		sources: registry,
		store:   store,
		logger:  logger,
	}
}

// Sources returns the names the panel can be built from.
func (s *Service) Sources() []string {
	return s.sources.Names()
}

// Panel loads the named source and reconciles it against the coverage log.
func (s *Service) Panel(ctx context.Context, source string, q sources.Query) (*Result, error) {
	start := time.Now()

	src, err := s.sources.Get(source)
	if err != nil {
		return nil, err
	}

	batch, err := src.Load(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load source %s: %w", source, err)
	}

	buckets := reconcile.Reconcile(batch.Rows, batch.Options, s.store.List())

	date := q.Date
	if d, ok := batch.Meta["date"].(string); ok && date == "" {
		date = d
	}

	return &Result{
		ElapsedMS: time.Since(start).Milliseconds(),
		Source:    source,
		Date:      date,
		Periods:   buckets,
		Summary:   reconcile.Summarize(buckets),
		Meta:      batch.Meta,
	}, nil
}

// Cover appends an assignment to the coverage log. The next panel built from any
// source reflects it.
func (s *Service) Cover(req CoverRequest) reconcile.Assignment {
	a := s.store.Add(reconcile.Assignment{
		Substitute:    req.Substitute,
		AbsentTeacher: req.AbsentTeacher,
		Period:        reconcile.NormalizeValue(req.Hour),
		Date:          req.Date,
	})
	s.logger.Info("Coverage recorded",
		zap.String("substitute", a.Substitute),
		zap.String("absent_teacher", a.AbsentTeacher),
		zap.String("period", a.Period.String()))
	return a
}

// Assignments returns the coverage log in insertion order.
func (s *Service) Assignments() []reconcile.Assignment {
	return s.store.List()
}
