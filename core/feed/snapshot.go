package feed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"guardias/core/storage"
)

// Snapshot origins reported by Read.
const (
	OriginStorage = "storage"
	OriginFile    = "file"
)

// ErrNoSnapshot is returned when neither storage nor the local file holds a copy.
var ErrNoSnapshot = errors.New("no fallback snapshot available")

// Snapshot is the last known good copy of a remote feed.
// Storage is tried first, then the local file; either may be left unset.
type Snapshot struct {
	Client storage.Client
	Bucket string
	Object string
	File   string
}

// Read returns the snapshot bytes and where they came from.
func (s Snapshot) Read(ctx context.Context) ([]byte, string, error) {
	var errs []error

	if s.Client != nil && s.Object != "" {
		data, err := storage.ReadObject(ctx, s.Client, s.Bucket, s.Object)
		if err == nil {
			return data, OriginStorage, nil
		}
		errs = append(errs, err)
	}

	if s.File != "" {
		data, err := os.ReadFile(s.File)
		if err == nil {
			return data, OriginFile, nil
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil, "", ErrNoSnapshot
	}
	return nil, "", fmt.Errorf("%w: %w", ErrNoSnapshot, errors.Join(errs...))
}

// Save stores data as the new storage snapshot. Without a storage client it does nothing.
func (s Snapshot) Save(ctx context.Context, data []byte, contentType string) error {
	if s.Client == nil || s.Object == "" {
		return nil
	}
	return storage.WriteObject(ctx, s.Client, s.Bucket, s.Object, contentType, data)
}
