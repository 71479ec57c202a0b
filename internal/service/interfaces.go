// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-family-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SnapshotSource hands out the current in-memory domain state.
type SnapshotSource interface {
	Export(ctx context.Context) (models.DomainSnapshot, error)
}

// StoreReloader refreshes every domain store from the cache after a load or
// a family switch. An empty familyID leaves the stores empty.
type StoreReloader interface {
	ReloadAll(ctx context.Context, familyID string) error
	// ReplaceAll runs replace and reloads every store while the stores
	// hold back their own writes, so no store change lands between the
	// two steps.
	ReplaceAll(ctx context.Context, familyID string, replace func(ctx context.Context) error) error
}

// SyncEngine is the sync orchestrator as seen by the CLI, the local API and
// the file watcher. Every operation records its outcome in State().LastError.
type SyncEngine interface {
	// SwitchTenant drops everything belonging to the previous family and
	// initializes sync for family.
	SwitchTenant(ctx context.Context, family models.Family) error
	// SignOut drops the active family and all session secrets.
	SignOut(ctx context.Context) error
	// ForgetFamily deletes the local data and file connection of a family.
	ForgetFamily(ctx context.Context, familyID string) error

	// Initialize restores the family's file connection without prompting.
	Initialize(ctx context.Context) error
	// RequestPermission prompts for access and loads the file on success.
	RequestPermission(ctx context.Context) error
	// SelectSyncFile lets the user choose a new file and writes it at once.
	SelectSyncFile(ctx context.Context) error

	CheckForConflicts(ctx context.Context) (models.ConflictCheck, error)
	SyncNow(ctx context.Context, force bool) error
	ForceSyncNow(ctx context.Context) error

	LoadFromFile(ctx context.Context) error
	LoadFromNewFile(ctx context.Context) error
	DecryptPendingFile(ctx context.Context, password []byte) error

	EnableEncryption(ctx context.Context, password []byte) error
	DisableEncryption(ctx context.Context) error
	SetSessionPassword(password []byte) error
	ClearSessionPassword()

	Disconnect(ctx context.Context) error
	SetAutoSync(ctx context.Context, enabled bool) error

	// ManualExport writes a sync file to w and returns a suggested name.
	ManualExport(ctx context.Context, w io.Writer) (string, error)
	// ManualImport loads a sync file from r.
	ManualImport(ctx context.Context, r io.Reader) error

	// ExternalChange is called when another writer touched the sync file.
	ExternalChange(ctx context.Context) error
	// SnapshotChanged schedules a debounced save.
	SnapshotChanged()

	State() models.SyncState
	OnStateChange(fn func(models.SyncState))
}
