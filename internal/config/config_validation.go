// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "path/filepath"

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.CacheDSN == "" || cfg.Storage.HandlesDSN == "" {
		return ErrInvalidStorageConfigs
	}
	if filepath.Clean(cfg.Storage.CacheDSN) == filepath.Clean(cfg.Storage.HandlesDSN) {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.Debounce <= 0 || cfg.Sync.KDFIterations < MinKDFIterations || cfg.Sync.KDFIterations > MaxKDFIterations {
		return ErrInvalidSyncConfigs
	}

	if cfg.App.FamilyID == "" && cfg.Identity.URL == "" {
		return ErrInvalidIdentityConfigs
	}
	if cfg.Identity.URL != "" && cfg.Identity.Timeout <= 0 {
		return ErrInvalidIdentityConfigs
	}

	if cfg.API.Address == "" {
		return ErrInvalidAPIConfigs
	}

	return nil
}
