// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from environment variables, command-line
// flags, an optional JSON file and the defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App identifies the active family when no identity provider is used.
	App App `envPrefix:"APP_"`

	// Storage holds the locations of the cache and handle databases.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync tunes the sync engine.
	Sync Sync `envPrefix:"SYNC_"`

	// Identity configures the remote identity provider.
	Identity Identity `envPrefix:"IDENTITY_"`

	// API configures the local control API.
	API API `envPrefix:"API_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the statically configured tenant.
type App struct {
	FamilyID   string `env:"FAMILY_ID"`
	FamilyName string `env:"FAMILY_NAME"`
	LogLevel   string `env:"LOG_LEVEL"`
}

// Storage groups the local database files.
type Storage struct {
	// CacheDSN is the SQLite file holding tenant caches and sync settings.
	CacheDSN string `env:"CACHE_DSN"`

	// HandlesDSN is the SQLite file holding file-capability handles. It is
	// kept apart from the cache so clearing a cache keeps the connection.
	HandlesDSN string `env:"HANDLES_DSN"`

	// SyncFilePath is the default location offered by the file picker.
	SyncFilePath string `env:"SYNC_FILE"`
}

// Sync tunes the sync engine.
type Sync struct {
	// Debounce is the quiet period after the last change before an
	// automatic save.
	Debounce time.Duration `env:"DEBOUNCE"`

	// KDFIterations is the PBKDF2 iteration count for new envelopes.
	KDFIterations int `env:"KDF_ITERATIONS"`

	// Watch enables the sync-file watcher.
	Watch bool `env:"WATCH"`
}

// Identity configures the remote identity provider. When URL is empty the
// family from App is used.
type Identity struct {
	URL     string        `env:"URL"`
	Token   string        `env:"TOKEN"`
	SignKey string        `env:"SIGN_KEY"`
	Timeout time.Duration `env:"TIMEOUT"`
}

// API configures the local control API.
type API struct {
	Address string `env:"ADDRESS"`

	// Token, when set, must be sent as a bearer token with every request.
	Token string `env:"TOKEN"`
}
