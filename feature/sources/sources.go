package sources

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"guardias/core/feed"
	"guardias/core/reconcile"
	"guardias/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUnknownSource is returned by Registry.Get for names nobody registered.
var ErrUnknownSource = errors.New("unknown source")

// Query carries the request parameters a source may honour.
type Query struct {
	// Date is the YYYY-MM-DD day to load. Empty means every date the source has,
	// except for sources that default to today.
	Date string
}

// Batch is what a source hands to the reconciliation engine.
type Batch struct {
	Rows    []reconcile.Row
	Options reconcile.Options
	// Meta is source specific detail echoed back to clients (origin, counts, fallbacks).
	Meta map[string]any
}

func newBatch() *Batch {
	return &Batch{Rows: []reconcile.Row{}, Meta: map[string]any{}}
}

// Source loads raw absence and substitute rows from one upstream.
type Source interface {
	Name() string
	Load(ctx context.Context, q Query) (*Batch, error)
}

// Registry resolves sources by name.
type Registry struct {
	sources map[string]Source
}

// NewRegistry registers the given sources. A later source replaces an earlier one with the same name.
func NewRegistry(srcs ...Source) *Registry {
	r := &Registry{sources: make(map[string]Source, len(srcs))}
	for _, s := range srcs {
		r.sources[s.Name()] = s
	}
	return r
}

// Get returns the source registered under name.
func (r *Registry) Get(name string) (Source, error) {
	s, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return s, nil
}

// Names returns the registered source names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Deps are the shared collaborators of the built-in sources.
type Deps struct {
	Feed    feed.Config
	DB      *gorm.DB
	Storage storage.Client
	Bucket  string
	Logger  *zap.Logger
	// Fetcher overrides the default cached HTTP fetcher.
	Fetcher feed.Fetcher
}

// NewDefaultRegistry wires the mysql, csv, json, mongo and sample sources.
func NewDefaultRegistry(d Deps) *Registry {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher := d.Fetcher
	if fetcher == nil {
		fetcher = feed.NewCachedFetcher(feed.NewHTTPFetcher(d.Feed.Timeout()), d.Feed.CacheTTL())
	}

	csvFeed := Remote{
		Fetcher:         fetcher,
		URL:             d.Feed.CSVURL,
		Snapshot:        d.Feed.CSVSnapshot(d.Storage, d.Bucket),
		RefreshSnapshot: d.Feed.RefreshSnapshots,
		Logger:          logger,
	}
	jsonFeed := csvFeed
	jsonFeed.URL = d.Feed.JSONURL
	jsonFeed.Snapshot = d.Feed.JSONSnapshot(d.Storage, d.Bucket)

	return NewRegistry(
		NewMySQLSource(d.DB),
		NewCSVSource(csvFeed),
		NewJSONSource(jsonFeed),
		NewDocstoreSource(fetcher, d.Feed.DocstoreURL, logger),
		SampleSource{},
	)
}
