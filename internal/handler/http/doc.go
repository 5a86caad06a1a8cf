// Package http implements the REST transport of the tour booking API.
//
// It wires the /api/v1 routes, the generic CRUD handlers shared by tours,
// users, reviews and bookings, and the middleware chain that runs in front
// of them: request tracing, access logging, security headers, rate limiting,
// body limits and sanitizing, and JWT authentication with role checks.
// Every handler error is normalized into the JSON error envelope by
// writeError.
package http
