// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ConflictCheck is the result of comparing the sync file's timestamp with
// the family's last successful sync.
type ConflictCheck struct {
	HasConflict    bool       `json:"has_conflict"`
	FileTimestamp  *time.Time `json:"file_timestamp,omitempty"`
	LocalTimestamp *time.Time `json:"local_timestamp,omitempty"`
}
