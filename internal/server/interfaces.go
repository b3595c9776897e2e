package server

// Server is the lifecycle contract of a transport server for the detection
// API. The current implementation serves HTTP; anything satisfying this
// interface plugs into the same signal-driven shutdown flow.
type Server interface {
	// RunServer starts accepting requests and blocks until the server stops.
	RunServer()

	// Shutdown stops accepting new requests, drains the in-flight ones and
	// frees associated resources.
	Shutdown()
}
