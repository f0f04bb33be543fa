// Package panel implements the guard panel: the per-period view of absences and
// available substitutes, and the coverage actions that update it.
//
// Each request loads rows from one source (see package sources), reconciles them
// with the coverage log and returns seven period buckets in display order. The
// coverage log is the only state and lives for the lifetime of the process.
//
// # HTTP Endpoints
//
//   - GET /api/{source}?fecha=YYYY-MM-DD : Panel for mysql, csv, json, mongo or sample.
//   - POST /api/cubrir-ausencia : Record a substitute covering an absence.
//   - GET /api/coberturas : List recorded coverage.
package panel
