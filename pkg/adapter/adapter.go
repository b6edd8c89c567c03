// Package adapter defines the boundary surface a host bridge drives.
package adapter

import "context"

// Adapter is a transport-facing frontend for the entry operations engine.
//
// Each adapter binds the operation surface to a specific host transport
// (stdio bridge, test harness, ...). Implementations must be safe for
// concurrent use: Stop may be called concurrently with Serve.
type Adapter interface {
	// Serve runs the adapter until the context is cancelled or an
	// unrecoverable transport error occurs. Cancellation triggers a
	// graceful stop and returns nil or context.Canceled.
	Serve(ctx context.Context) error

	// Stop initiates a graceful shutdown. Idempotent.
	Stop(ctx context.Context) error

	// Protocol returns the human-readable transport name for logging.
	Protocol() string
}
