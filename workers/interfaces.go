// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a ticker-driven Periodic worker and a
// Group that runs multiple workers with a shared stop.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Run must block until ctx is cancelled (or until the worker has nothing
// left to do) and return only once the worker has fully stopped.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}
