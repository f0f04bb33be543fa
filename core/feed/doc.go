// Package feed fetches the remote documents the panel reconciles: the published
// spreadsheet CSV, the script JSON feed and the document-store REST API.
//
// HTTPFetcher uses the Fiber client; CachedFetcher adds a per-URL TTL cache with
// singleflight so a burst of panel refreshes costs one upstream call. Snapshot
// reads the last known good copy from object storage, then from a local file, when
// an upstream is down, and Save keeps that copy fresh after each successful fetch.
package feed
