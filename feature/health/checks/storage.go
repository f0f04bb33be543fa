package checks

import (
	"context"
	"fmt"
	"os"
	"strings"

	"guardias/core/feed"
	"guardias/core/storage"

	"go.uber.org/zap"
)

// CheckBucket reports whether the snapshot bucket is reachable and exists.
func CheckBucket(ctx context.Context, client storage.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", bucket)
	}
	return nil
}

// MissingSnapshots returns the snapshot objects that cannot be read from storage.
func MissingSnapshots(ctx context.Context, snapshots []feed.Snapshot) []string {
	missing := []string{}
	for _, s := range snapshots {
		if s.Client == nil || s.Object == "" {
			continue
		}
		if _, err := storage.ReadObject(ctx, s.Client, s.Bucket, s.Object); err != nil {
			missing = append(missing, s.Object)
		}
	}
	return missing
}

// FixSnapshots seeds the missing storage snapshots from their local fallback files.
func FixSnapshots(ctx context.Context, snapshots []feed.Snapshot, logger *zap.Logger, missing []string) error {
	want := make(map[string]struct{}, len(missing))
	for _, m := range missing {
		want[m] = struct{}{}
	}

	for _, s := range snapshots {
		if _, ok := want[s.Object]; !ok {
			continue
		}
		data, err := os.ReadFile(s.File)
		if err != nil {
			logger.Error("Failed to read local snapshot", zap.String("file", s.File), zap.Error(err))
			return fmt.Errorf("failed to read %s: %w", s.File, err)
		}
		if err := s.Save(ctx, data, contentType(s.Object)); err != nil {
			logger.Error("Failed to upload snapshot", zap.String("object", s.Object), zap.Error(err))
			return err
		}
		logger.Info("Seeded missing snapshot", zap.String("object", s.Object), zap.String("file", s.File))
	}
	return nil
}

func contentType(object string) string {
	if strings.HasSuffix(object, ".csv") {
		return "text/csv"
	}
	return "application/json"
}
