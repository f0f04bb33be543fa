// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL connections (the school's reportes, profesores,
// grupos and guardias tables) from the application's configuration. SQLite is
// supported for local runs and tests.
//
// # Connect
//
// Open respects the Enabled flag; Connect always dials. Ping issues the same
// "SELECT 1" probe the health endpoint reports.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the health feature verify that the tables
// the panel queries still carry the columns it expects.
//
// # Usage
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    logg.Warn("Database unavailable", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "reportes", []string{"id", "fecha"})
package database
