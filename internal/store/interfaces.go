// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-family-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// HandleRepository persists one capability handle per family in the
// dedicated handle database.
type HandleRepository interface {
	// Persist stores handle for familyID, replacing any earlier handle.
	Persist(ctx context.Context, familyID string, handle models.CapabilityHandle) error
	// Retrieve returns nil and no error when the family never chose a file.
	Retrieve(ctx context.Context, familyID string) (*models.CapabilityHandle, error)
	// Delete forgets the handle. Deleting a missing handle is not an error.
	Delete(ctx context.Context, familyID string) error
}

// SnapshotCache is the disposable per-family read cache of the domain
// snapshot.
type SnapshotCache interface {
	// ReplaceSnapshot swaps the whole cached snapshot in one transaction.
	ReplaceSnapshot(ctx context.Context, familyID string, snapshot models.DomainSnapshot) error
	// GetSnapshot returns an empty snapshot when nothing is cached.
	GetSnapshot(ctx context.Context, familyID string) (models.DomainSnapshot, error)
}

// TenantRegistry remembers every family that was ever active on this
// device.
type TenantRegistry interface {
	RegisterTenant(ctx context.Context, family models.Family) error
	ListTenants(ctx context.Context) ([]models.Family, error)
	// DeleteTenant removes the family with its cache and sync settings.
	DeleteTenant(ctx context.Context, familyID string) error
}

// SettingsRepository stores the per-family sync settings.
type SettingsRepository interface {
	// GetSettings returns defaults when the family has no stored settings.
	GetSettings(ctx context.Context, familyID string) (models.SyncSettings, error)
	SaveSettings(ctx context.Context, settings models.SyncSettings) error
}
