// Package delivery defines the transport-facing entry points of the
// application.
package delivery

import "context"

// Delivery is a long-running transport server started by main.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
