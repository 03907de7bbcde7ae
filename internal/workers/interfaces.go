// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers registry that runs every
// registered worker in the background, and RegisterTasks, which schedules
// the host's own background tasks.
package workers

//go:generate mockgen -source=interfaces.go -destination=../mock/worker_mock.go -package=mock

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run is expected to block until ctx is cancelled or the work is done.
// Returning an error or panicking never stops the host: the failure is
// logged and the worker is not restarted.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Name() string { return "my-worker" }
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Name() string
	Run(ctx context.Context) error
}
