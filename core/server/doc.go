// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package defines
// the listen port, the optional API key and the allowed CORS origins used by the
// browser panel.
package server
