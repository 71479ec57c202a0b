// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Capability kinds understood by the capability providers.
const (
	HandleKindNative = "native"
	HandleKindManual = "manual"
)

// CapabilityHandle is an opaque, revocable reference to a user-chosen file
// location. Only the capability provider that issued it interprets Locator.
type CapabilityHandle struct {
	Kind      string    `json:"kind"`
	Locator   string    `json:"locator"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// HandleKey returns the handle-store key for a family.
func HandleKey(familyID string) string {
	return "syncFile-" + familyID
}
