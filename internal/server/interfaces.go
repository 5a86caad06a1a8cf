package server

// Server is the lifecycle of the process's transports.
type Server interface {
	// RunServer starts every configured transport and blocks until a
	// termination signal arrives and all of them have drained.
	RunServer()

	// Shutdown stops accepting new requests and waits for in-flight ones.
	Shutdown()
}
