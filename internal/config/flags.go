// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names shared by every client command.
const (
	FlagConfig        = "config"
	FlagFamilyID      = "family-id"
	FlagFamilyName    = "family-name"
	FlagCacheDSN      = "cache-db"
	FlagHandlesDSN    = "handles-db"
	FlagSyncFile      = "file"
	FlagDebounce      = "debounce"
	FlagKDFIterations = "kdf-iterations"
	FlagWatch         = "watch"
	FlagIdentityURL   = "identity-url"
	FlagIdentityToken = "identity-token"
	FlagAPIAddress    = "address"
	FlagAPIToken      = "api-token"
	FlagLogLevel      = "log-level"
)

// RegisterFlags declares the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "JSON config file path")
	fs.String(FlagFamilyID, "", "active family id")
	fs.String(FlagFamilyName, "", "active family display name")
	fs.String(FlagCacheDSN, "", "cache database file")
	fs.String(FlagHandlesDSN, "", "file handle database file")
	fs.StringP(FlagSyncFile, "f", "", "sync file path offered to the picker")
	fs.Duration(FlagDebounce, 0, "auto-save quiet period (e.g. 2s)")
	fs.Int(FlagKDFIterations, 0, "PBKDF2 iterations for new envelopes")
	fs.Bool(FlagWatch, false, "watch the sync file for external changes")
	fs.String(FlagIdentityURL, "", "identity provider base URL")
	fs.String(FlagIdentityToken, "", "identity provider bearer token")
	fs.StringP(FlagAPIAddress, "a", "", "local API address host:port")
	fs.String(FlagAPIToken, "", "bearer token required by the local API")
	fs.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
}

// parseFlags reads the values of flags registered with RegisterFlags.
// Flags the user did not set stay zero so lower-priority sources can fill
// them.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var err error

	str := func(name string, dst *string) {
		if err != nil || fs.Lookup(name) == nil || !fs.Changed(name) {
			return
		}
		*dst, err = fs.GetString(name)
	}

	str(FlagConfig, &cfg.JSONFilePath)
	str(FlagFamilyID, &cfg.App.FamilyID)
	str(FlagFamilyName, &cfg.App.FamilyName)
	str(FlagLogLevel, &cfg.App.LogLevel)
	str(FlagCacheDSN, &cfg.Storage.CacheDSN)
	str(FlagHandlesDSN, &cfg.Storage.HandlesDSN)
	str(FlagSyncFile, &cfg.Storage.SyncFilePath)
	str(FlagIdentityURL, &cfg.Identity.URL)
	str(FlagIdentityToken, &cfg.Identity.Token)
	str(FlagAPIAddress, &cfg.API.Address)
	str(FlagAPIToken, &cfg.API.Token)

	if err == nil && fs.Lookup(FlagDebounce) != nil && fs.Changed(FlagDebounce) {
		cfg.Sync.Debounce, err = fs.GetDuration(FlagDebounce)
	}
	if err == nil && fs.Lookup(FlagKDFIterations) != nil && fs.Changed(FlagKDFIterations) {
		cfg.Sync.KDFIterations, err = fs.GetInt(FlagKDFIterations)
	}
	if err == nil && fs.Lookup(FlagWatch) != nil && fs.Changed(FlagWatch) {
		cfg.Sync.Watch, err = fs.GetBool(FlagWatch)
	}

	if err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}
	return cfg, nil
}
