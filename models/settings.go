// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncSettings are the per-family sync flags stored next to the domain
// settings by the settings repository.
type SyncSettings struct {
	FamilyID          string     `json:"family_id"`
	SyncEnabled       bool       `json:"sync_enabled"`
	AutoSyncEnabled   bool       `json:"auto_sync_enabled"`
	EncryptionEnabled bool       `json:"encryption_enabled"`
	LastSyncAt        *time.Time `json:"last_sync_at,omitempty"`
	FileName          string     `json:"file_name,omitempty"`
}
