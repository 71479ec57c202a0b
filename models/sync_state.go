// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncStatus is a state of the sync orchestrator.
type SyncStatus string

const (
	StatusNotConfigured   SyncStatus = "not-configured"
	StatusNeedsPermission SyncStatus = "needs-permission"
	StatusReady           SyncStatus = "ready"
	StatusSyncing         SyncStatus = "syncing"
	StatusError           SyncStatus = "error"
)

// SyncError is the observable form of the last failed operation.
type SyncError struct {
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	Recoverable bool   `json:"recoverable"`
}

// SyncState is derived from the orchestrator after every transition. It
// is never persisted.
type SyncState struct {
	FamilyID        string     `json:"family_id,omitempty"`
	Status          SyncStatus `json:"status"`
	IsConfigured    bool       `json:"is_configured"`
	FileName        string     `json:"file_name,omitempty"`
	IsSyncing       bool       `json:"is_syncing"`
	NeedsPermission bool       `json:"needs_permission"`
	NeedsPassword   bool       `json:"needs_password"`
	Encrypted       bool       `json:"encrypted"`
	AutoSync        bool       `json:"auto_sync"`
	LastError       *SyncError `json:"last_error,omitempty"`
}
