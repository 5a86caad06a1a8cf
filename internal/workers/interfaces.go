// Package workers runs the background maintenance jobs of the application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns immediately; the work happens on
// goroutines owned by the worker. Stop blocks until every running job has
// returned.
type Worker interface {
	Run()
	Stop()
}
