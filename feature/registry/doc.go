// Package registry implements the REST API over the school records: reported
// absences, teachers, class groups and guard assignments.
//
// Every response uses the envelope {success, data, count?, message?, error?}.
// Without a configured database the v1 routes answer 503, while the plain
// listings fall back to a sample roster so the panel UI keeps working.
//
// # HTTP Endpoints
//
//   - GET|POST /api/v1/ausencias, GET|PUT|DELETE /api/v1/ausencias/:id
//   - GET|POST /api/v1/profesores, GET /api/v1/profesores/:id
//   - GET|POST /api/v1/grupos, GET /api/v1/grupos/:id
//   - GET|POST /api/v1/guardias, DELETE /api/v1/guardias/:id
//   - GET /api/profesores, GET /api/grupos : {id, nombre} listings.
//   - GET /api/profesores-disponibles?fecha&hora : Teachers free to guard.
package registry
