package cors

import (
	"guardias/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// New returns the CORS middleware for the browser panel. Credentials stay disabled
// so a wildcard origin is accepted on the school LAN.
func New(cfg server.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-API-Key, X-Ray-ID",
		ExposeHeaders:    "X-Ray-ID",
		AllowCredentials: false,
	})
}
