// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Family is a tenant: an isolated unit of financial data with its own
// cache and its own sync file connection.
type Family struct {
	ID   string `json:"family_id"`
	Name string `json:"family_name,omitempty"`
}
