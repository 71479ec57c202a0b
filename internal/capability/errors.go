// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package capability

import "errors"

var (
	// ErrUnavailable is returned by hosts that cannot provide native file
	// handles. It is permanent for the session.
	ErrUnavailable = errors.New("file capability is not available on this host")

	// ErrPermissionDenied is returned when the host refuses access to the
	// file, either because the grant was never given or was revoked.
	ErrPermissionDenied = errors.New("file access permission denied")

	// ErrNotFound is returned when the file behind a handle does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrCancelled is returned by a Picker when no file was chosen.
	ErrCancelled = errors.New("file selection cancelled")
)
