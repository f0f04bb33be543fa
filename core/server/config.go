package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// CorsOrigins is a comma separated list of allowed origins, or "*".
	CorsOrigins string `mapstructure:"cors_origins" default:"*"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Origins returns the normalized origin list in the form expected by the CORS middleware.
func (c Config) Origins() string {
	if strings.TrimSpace(c.CorsOrigins) == "" {
		return "*"
	}
	parts := strings.Split(c.CorsOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}
