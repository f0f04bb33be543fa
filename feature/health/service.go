package health

import (
	"context"
	"errors"

	"guardias/core/database"
	"guardias/core/feed"
	"guardias/core/storage"
	"guardias/feature/health/checks"
	"guardias/feature/registry/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Component states.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusDisabled = "disabled"
)

// Overall states.
const (
	Healthy   = "healthy"
	Unhealthy = "unhealthy"
)

// ComponentReport is the state of one dependency.
type ComponentReport struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report is the combined health of the service.
type Report struct {
	Status    string               `json:"status"`
	Database  ComponentReport      `json:"database"`
	Storage   ComponentReport      `json:"storage"`
	Schema    *checks.SchemaReport `json:"schema,omitempty"`
	Snapshots []string             `json:"missing_snapshots"`
}

// Service runs the health checks.
type Service struct {
	db        *gorm.DB
	client    storage.Client
	bucket    string
	snapshots []feed.Snapshot
	logger    *zap.Logger
}

// NewService creates a new health service. db and client may be nil when disabled.
func NewService(db *gorm.DB, client storage.Client, bucket string, snapshots []feed.Snapshot, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:        db,
		client:    client,
		bucket:    bucket,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Check pings every configured dependency. Disabled ones never make the service unhealthy.
func (s *Service) Check(ctx context.Context) *Report {
	report := &Report{Status: Healthy, Snapshots: []string{}}

	report.Database = component(database.Ping(ctx, s.db))
	if report.Database.Status == StatusOK {
		schema, err := s.CheckSchema()
		if err != nil {
			report.Database = component(err)
		} else {
			report.Schema = schema
			if !schema.Matched {
				report.Status = Unhealthy
			}
		}
	}

	if s.client == nil {
		report.Storage = ComponentReport{Status: StatusDisabled}
	} else {
		report.Storage = component(checks.CheckBucket(ctx, s.client, s.bucket))
		if report.Storage.Status == StatusOK {
			report.Snapshots = checks.MissingSnapshots(ctx, s.snapshots)
		}
	}

	if report.Database.Status == StatusError || report.Storage.Status == StatusError {
		report.Status = Unhealthy
	}
	return report
}

// CheckSchema compares the school tables with their models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.All()...)
}

// MissingSnapshots lists the snapshot objects absent from storage.
func (s *Service) MissingSnapshots(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, errStorageDisabled
	}
	if err := checks.CheckBucket(ctx, s.client, s.bucket); err != nil {
		return nil, err
	}
	return checks.MissingSnapshots(ctx, s.snapshots), nil
}

// FixSnapshots uploads the local fallback files for the missing snapshots.
func (s *Service) FixSnapshots(ctx context.Context, missing []string) error {
	return checks.FixSnapshots(ctx, s.snapshots, s.logger, missing)
}

var errStorageDisabled = errors.New("storage disabled")

func component(err error) ComponentReport {
	switch {
	case err == nil:
		return ComponentReport{Status: StatusOK}
	case errors.Is(err, database.ErrDisabled):
		return ComponentReport{Status: StatusDisabled}
	default:
		return ComponentReport{Status: StatusError, Error: err.Error()}
	}
}
