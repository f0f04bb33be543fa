// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client. The guardias service keeps the last good copy of
// every remote feed (CSV, JSON) in a bucket so a panel can still be rendered when
// the upstream spreadsheet or script endpoint is down.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, "guardias", "fallback/guardia.csv")
package storage
