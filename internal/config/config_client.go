// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ClientApp carries the statically configured family.
type ClientApp struct {
	FamilyID   string
	FamilyName string
	LogLevel   string
}

// ClientStorage carries the database file locations.
type ClientStorage struct {
	CacheDSN     string
	HandlesDSN   string
	SyncFilePath string
}

// ClientSync carries sync engine tuning.
type ClientSync struct {
	Debounce      time.Duration
	KDFIterations int
	Watch         bool
}

// ClientIdentity carries identity provider settings.
type ClientIdentity struct {
	URL     string
	Token   string
	SignKey string
	Timeout time.Duration
}

// ClientAPI carries local API settings.
type ClientAPI struct {
	Address string
	Token   string
}

// ClientConfig is the validated configuration used by the client.
type ClientConfig struct {
	App      ClientApp
	Storage  ClientStorage
	Sync     ClientSync
	Identity ClientIdentity
	API      ClientAPI
}

// GetClientConfig assembles and validates the client configuration.
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.client()
	return clientCfg, clientCfg.validate()
}

func (cfg *StructuredConfig) client() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			FamilyID:   cfg.App.FamilyID,
			FamilyName: cfg.App.FamilyName,
			LogLevel:   cfg.App.LogLevel,
		},
		Storage: ClientStorage{
			CacheDSN:     cfg.Storage.CacheDSN,
			HandlesDSN:   cfg.Storage.HandlesDSN,
			SyncFilePath: cfg.Storage.SyncFilePath,
		},
		Sync: ClientSync{
			Debounce:      cfg.Sync.Debounce,
			KDFIterations: cfg.Sync.KDFIterations,
			Watch:         cfg.Sync.Watch,
		},
		Identity: ClientIdentity{
			URL:     cfg.Identity.URL,
			Token:   cfg.Identity.Token,
			SignKey: cfg.Identity.SignKey,
			Timeout: cfg.Identity.Timeout,
		},
		API: ClientAPI{Address: cfg.API.Address, Token: cfg.API.Token},
	}
}
