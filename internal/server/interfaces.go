// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle of the servers managed by this package.
type Server interface {
	// Run serves requests until ctx is cancelled, then stops gracefully.
	// It returns early when the server cannot start.
	Run(ctx context.Context) error
}
