// Package server runs the HTTP API and the gRPC health endpoint side by
// side. Both are stopped gracefully on SIGTERM, SIGINT or SIGQUIT: the
// health service first reports NOT_SERVING, then in-flight requests are
// given time to finish.
package server
