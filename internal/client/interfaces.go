// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of a runnable client application.
type Client interface {
	// Start resolves the active family and restores its file connection.
	Start(ctx context.Context) error
	// Serve blocks until ctx is cancelled or a background worker fails.
	Serve(ctx context.Context) error
	Close() error
}
