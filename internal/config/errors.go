// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [GetClientConfig].
var (
	// ErrInvalidStorageConfigs is returned when a database location is
	// missing or both databases point at the same file.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidSyncConfigs is returned for a non-positive debounce or a
	// too-low KDF iteration count.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")

	// ErrInvalidIdentityConfigs is returned when neither a static family
	// nor an identity provider is configured.
	ErrInvalidIdentityConfigs = errors.New("invalid identity configuration")

	// ErrInvalidAPIConfigs is returned when the API address is empty.
	ErrInvalidAPIConfigs = errors.New("invalid api configuration")
)
