// Package docs serves GET /api/v1/docs, a JSON catalogue of the registered routes
// and panel sources. The Swagger UI itself is mounted at /swagger/* by the start command.
package docs
