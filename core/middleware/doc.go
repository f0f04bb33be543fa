// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation, disabled when no key is configured.
//   - rayid: a Request ID (RayID) for every incoming request, stored in the context
//     and echoed in the X-Ray-ID response header for tracing.
//   - cors: origin policy for the browser panel served from the school network.
//
// These middleware components are registered globally in the start command.
package middleware
