// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/capability_mock.go -package=mock

package capability

import (
	"context"

	"github.com/MKhiriev/go-family-sync/models"
)

// FileCapability is a borrowed, revocable grant to a single file.
type FileCapability interface {
	// Name returns the display name of the file.
	Name() string

	// CheckGranted reports whether the host currently allows reading and
	// writing the file. It never prompts the user.
	CheckGranted(ctx context.Context) (bool, error)

	// RequestGrant asks the user for access. It must only be called as the
	// direct result of a user action.
	RequestGrant(ctx context.Context) (bool, error)

	// Read returns the whole file. A file that does not exist yet yields
	// ErrNotFound.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the whole file.
	Write(ctx context.Context, data []byte) error
}

// Provider turns persisted handles into live capabilities.
type Provider interface {
	Open(handle models.CapabilityHandle) (FileCapability, error)
}

// Picker lets the user choose a file location.
type Picker interface {
	// PickSave chooses a location for a new sync file.
	PickSave(ctx context.Context, suggestedName string) (models.CapabilityHandle, error)
	// PickOpen chooses an existing sync file.
	PickOpen(ctx context.Context) (models.CapabilityHandle, error)
}

// Prompter asks the user to confirm access to a file.
type Prompter interface {
	Confirm(ctx context.Context, fileName string) (bool, error)
}
