// Package timeouts holds the facade's fallback durations.
package timeouts

import "time"

const (
	// GRPCDial bounds a backend dial plus its wait for SERVING, and the
	// NATS connect at startup.
	GRPCDial = 2 * time.Second
	// ReadHeader is the facade HTTP server's ReadHeaderTimeout.
	ReadHeader = 5 * time.Second
	// Shutdown is how long the facade drains in-flight requests on exit.
	Shutdown = 5 * time.Second
)
