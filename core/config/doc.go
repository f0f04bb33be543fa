// Package config provides configuration management for the guardias service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live next to each field as `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API key, allowed CORS origins
//   - Database: MySQL (or SQLite) connection details
//   - Storage: MinIO/S3 credentials and the bucket holding fallback snapshots
//   - Feed: remote CSV/JSON/document-store URLs, timeouts and cache TTL
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
