package sources

import (
	"context"
	"errors"
	"fmt"

	"guardias/core/feed"
	"guardias/core/reconcile"

	"go.uber.org/zap"
)

// OriginRemote marks rows parsed from the upstream URL itself.
const OriginRemote = "remote"

// ErrFeedUnavailable is returned when neither the upstream nor any snapshot yields rows.
var ErrFeedUnavailable = errors.New("feed unavailable")

type parseFunc func([]byte) ([]reconcile.Row, error)

// Remote is an upstream feed URL backed by a snapshot for when the URL fails.
type Remote struct {
	Fetcher  feed.Fetcher
	URL      string
	Snapshot feed.Snapshot
	// RefreshSnapshot stores every good upstream payload as the new snapshot.
	RefreshSnapshot bool
	Logger          *zap.Logger
}

func (r Remote) log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// loadRows fetches and parses the upstream payload. A fetch or parse failure
// falls back to the snapshot; a good upstream payload refreshes the snapshot.
func (r Remote) loadRows(ctx context.Context, contentType string, parse parseFunc) ([]reconcile.Row, string, error) {
	var errs []error

	if r.URL != "" && r.Fetcher != nil {
		rows, err := r.fetchRows(ctx, contentType, parse)
		if err == nil {
			return rows, OriginRemote, nil
		}
		errs = append(errs, err)
		r.log().Warn("Remote feed failed, using snapshot", zap.String("url", r.URL), zap.Error(err))
	}

	data, origin, err := r.Snapshot.Read(ctx)
	if err != nil {
		errs = append(errs, err)
		return nil, "", fmt.Errorf("%w: %w", ErrFeedUnavailable, errors.Join(errs...))
	}

	rows, err := parse(data)
	if err != nil {
		errs = append(errs, fmt.Errorf("parse %s snapshot: %w", origin, err))
		return nil, "", fmt.Errorf("%w: %w", ErrFeedUnavailable, errors.Join(errs...))
	}
	return rows, origin, nil
}

func (r Remote) fetchRows(ctx context.Context, contentType string, parse parseFunc) ([]reconcile.Row, error) {
	data, err := r.Fetcher.Fetch(ctx, r.URL)
	if err != nil {
		return nil, err
	}
	rows, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse remote payload: %w", err)
	}

	if r.RefreshSnapshot {
		if err := r.Snapshot.Save(ctx, data, contentType); err != nil {
			r.log().Warn("Failed to refresh feed snapshot", zap.String("object", r.Snapshot.Object), zap.Error(err))
		}
	}
	return rows, nil
}
