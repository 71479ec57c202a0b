// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/crypto"
	"github.com/MKhiriev/go-family-sync/internal/syncfile"
	"github.com/MKhiriev/go-family-sync/models"
)

// mapError translates capability, crypto and codec errors into the sync
// taxonomy, keeping the original error wrapped.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var kind error
	switch {
	case errors.Is(err, capability.ErrPermissionDenied):
		kind = ErrPermissionDenied
	case errors.Is(err, capability.ErrUnavailable):
		kind = ErrUnavailable
	case errors.Is(err, crypto.ErrAuthenticationFailed):
		kind = ErrAuthenticationFailed
	case errors.Is(err, crypto.ErrEmptyPassword):
		kind = ErrPasswordRequired
	case errors.Is(err, crypto.ErrMalformedEnvelope),
		errors.Is(err, syncfile.ErrMalformed),
		errors.Is(err, syncfile.ErrUnsupportedVersion),
		errors.Is(err, syncfile.ErrEncryptionMismatch):
		kind = ErrCorrupt
	default:
		return err
	}

	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

type errorKind struct {
	err         error
	name        string
	recoverable bool
}

var errorKinds = []errorKind{
	{ErrPermissionDenied, "permission-denied", true},
	{ErrAuthenticationFailed, "authentication-failed", true},
	{ErrTenantMismatch, "tenant-mismatch", false},
	{ErrConflictDetected, "conflict-detected", true},
	{ErrCorrupt, "corrupt", true},
	{ErrUnavailable, "unavailable", false},
	{ErrNoActiveTenant, "no-active-tenant", false},
	{ErrNotConfigured, "not-configured", true},
	{ErrPasswordRequired, "password-required", true},
	{ErrNoPendingFile, "no-pending-file", true},
}

// ToSyncError converts err into the observable lastError form.
func ToSyncError(err error) *models.SyncError {
	if err == nil {
		return nil
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return &models.SyncError{Kind: k.name, Message: err.Error(), Recoverable: k.recoverable}
		}
	}
	return &models.SyncError{Kind: "internal", Message: err.Error(), Recoverable: true}
}
