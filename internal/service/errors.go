// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Sync failure taxonomy. Every error returned by the engine matches at most
// one of these with [errors.Is]; lower-layer causes stay wrapped inside.
var (
	// ErrPermissionDenied means the host refused access to the sync file.
	// The user can re-grant it with RequestPermission.
	ErrPermissionDenied = errors.New("sync file permission denied")

	// ErrAuthenticationFailed means the password did not open the file:
	// either it is wrong or the ciphertext was tampered with.
	ErrAuthenticationFailed = errors.New("wrong password or tampered file")

	// ErrTenantMismatch means the file belongs to another family, or a
	// write was attempted through a connection opened for another family.
	ErrTenantMismatch = errors.New("sync file belongs to another family")

	// ErrConflictDetected means the file was written after our last sync.
	// The caller must load first or force the save.
	ErrConflictDetected = errors.New("sync file is newer than local state")

	// ErrCorrupt means the file could not be parsed or its envelope is
	// structurally invalid.
	ErrCorrupt = errors.New("sync file is corrupt")

	// ErrUnavailable means the host cannot provide native file handles.
	// Manual export and import still work.
	ErrUnavailable = errors.New("file sync is not available on this host")
)

// Precondition errors.
var (
	// ErrNoActiveTenant is returned when no family is active.
	ErrNoActiveTenant = errors.New("no active family")

	// ErrNotConfigured is returned by operations that need a sync file
	// when none was chosen.
	ErrNotConfigured = errors.New("sync file is not configured")

	// ErrPasswordRequired is returned when an encrypted file is read or
	// written without a session password.
	ErrPasswordRequired = errors.New("password required")

	// ErrNoPendingFile is returned by DecryptPendingFile when no encrypted
	// file is waiting for a password.
	ErrNoPendingFile = errors.New("no encrypted file is waiting for a password")
)
