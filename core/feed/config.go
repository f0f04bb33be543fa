package feed

import (
	"time"

	"guardias/core/storage"
)

// Config holds the remote feed locations and their fallbacks.
type Config struct {
	// CSVURL is the published spreadsheet export (CSV with a header row).
	CSVURL string `mapstructure:"csv_url" default:""`
	// JSONURL is the script endpoint returning {faltas, guardias}.
	JSONURL string `mapstructure:"json_url" default:""`
	// DocstoreURL is the base URL of the document-store REST API.
	DocstoreURL string `mapstructure:"docstore_url" default:"http://localhost:3001"`
	// CSVFallbackObject is the storage object holding the last good CSV.
	CSVFallbackObject string `mapstructure:"csv_fallback_object" default:"fallback/guardia.csv"`
	// CSVFallbackFile is the local CSV read when storage is unavailable.
	CSVFallbackFile string `mapstructure:"csv_fallback_file" default:"guardia.csv"`
	// JSONFallbackObject is the storage object holding the last good JSON document.
	JSONFallbackObject string `mapstructure:"json_fallback_object" default:"fallback/guardias.json"`
	// JSONFallbackFile is the local JSON read when storage is unavailable.
	JSONFallbackFile string `mapstructure:"json_fallback_file" default:"guardias.json"`
	// TimeoutSeconds bounds every remote request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// CacheTTLSeconds caches remote payloads; 0 disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
	// RefreshSnapshots writes every successful remote payload back to storage.
	RefreshSnapshots bool `mapstructure:"refresh_snapshots" default:"true"`
}

// Timeout returns the request timeout, defaulting to ten seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the payload cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// CSVSnapshot returns the fallback snapshot of the CSV feed.
func (c Config) CSVSnapshot(client storage.Client, bucket string) Snapshot {
	return Snapshot{Client: client, Bucket: bucket, Object: c.CSVFallbackObject, File: c.CSVFallbackFile}
}

// JSONSnapshot returns the fallback snapshot of the JSON feed.
func (c Config) JSONSnapshot(client storage.Client, bucket string) Snapshot {
	return Snapshot{Client: client, Bucket: bucket, Object: c.JSONFallbackObject, File: c.JSONFallbackFile}
}
