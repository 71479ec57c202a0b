// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// SyncFileData is the top-level JSON document written to the user's sync
// file. When Encrypted is true, Data holds an [EncryptionEnvelope];
// otherwise it holds a plain [DomainSnapshot].
type SyncFileData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	FamilyID   string          `json:"familyId,omitempty"`
	FamilyName string          `json:"familyName,omitempty"`
	Encrypted  bool            `json:"encrypted"`
	Data       json.RawMessage `json:"data"`
}

// IsLegacy reports whether the file carries no family identifier and
// therefore cannot be attributed to a tenant.
func (f SyncFileData) IsLegacy() bool {
	return f.FamilyID == ""
}
