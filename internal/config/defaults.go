// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	DefaultCacheDSN        = "family-cache.db"
	DefaultHandlesDSN      = "family-handles.db"
	DefaultDebounce        = 2 * time.Second
	DefaultKDFIterations   = 600_000
	DefaultIdentityTimeout = 10 * time.Second
	DefaultAPIAddress      = "127.0.0.1:8787"
	DefaultLogLevel        = "info"

	// MinKDFIterations is the lowest PBKDF2 iteration count accepted.
	MinKDFIterations = 100_000
	// MaxKDFIterations is the highest count a sync file may carry.
	MaxKDFIterations = 10_000_000
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: DefaultLogLevel},
		Storage: Storage{
			CacheDSN:   DefaultCacheDSN,
			HandlesDSN: DefaultHandlesDSN,
		},
		Sync: Sync{
			Debounce:      DefaultDebounce,
			KDFIterations: DefaultKDFIterations,
		},
		Identity: Identity{Timeout: DefaultIdentityTimeout},
		API:      API{Address: DefaultAPIAddress},
	}
}
