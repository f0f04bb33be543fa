// Package health reports whether the service's dependencies are usable.
//
// # Checks Provided
//
//   - Database: "SELECT 1" against the school database.
//   - Schema: profesores, grupos, reportes and guardias compared column by column with their gorm models.
//   - Storage: the snapshot bucket exists, and the CSV and JSON fallback snapshots are in it.
//
// A dependency switched off in configuration reports "disabled" and does not make the
// service unhealthy.
//
// # HTTP Endpoints
//
//   - GET /api/v1/health : Runs all checks (500 when unhealthy).
//   - GET /api/v1/health/schema : Runs the schema check.
//   - GET /api/v1/health/snapshots : Runs the snapshot check (supports ?fix=true).
package health
