// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the long-lived background parts of the client, such
// as the sync-file watcher and the local API server, as one unit.
package workers

import "context"

// Worker is a background task. Run blocks until ctx is cancelled or the
// task fails.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to the Worker interface.
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
