// Package timeouts defines the timeout constants shared by the binaries.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TelemetryFlush bounds the final span export when a binary exits.
const TelemetryFlush = 5 * time.Second
