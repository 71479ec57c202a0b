// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the optional JSON config.
type StructuredJSONConfig struct {
	App struct {
		FamilyID   string `json:"family_id"`
		FamilyName string `json:"family_name"`
		LogLevel   string `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		CacheDSN     string `json:"cache_dsn"`
		HandlesDSN   string `json:"handles_dsn"`
		SyncFilePath string `json:"sync_file"`
	} `json:"storage,omitempty"`

	Sync struct {
		Debounce      Duration `json:"debounce"`
		KDFIterations int      `json:"kdf_iterations"`
		Watch         bool     `json:"watch"`
	} `json:"sync,omitempty"`

	Identity struct {
		URL     string   `json:"url"`
		Token   string   `json:"token"`
		SignKey string   `json:"sign_key"`
		Timeout Duration `json:"timeout"`
	} `json:"identity,omitempty"`

	API struct {
		Address string `json:"address"`
		Token   string `json:"token"`
	} `json:"api,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			FamilyID:   jsonCfg.App.FamilyID,
			FamilyName: jsonCfg.App.FamilyName,
			LogLevel:   jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			CacheDSN:     jsonCfg.Storage.CacheDSN,
			HandlesDSN:   jsonCfg.Storage.HandlesDSN,
			SyncFilePath: jsonCfg.Storage.SyncFilePath,
		},
		Sync: Sync{
			Debounce:      time.Duration(jsonCfg.Sync.Debounce),
			KDFIterations: jsonCfg.Sync.KDFIterations,
			Watch:         jsonCfg.Sync.Watch,
		},
		Identity: Identity{
			URL:     jsonCfg.Identity.URL,
			Token:   jsonCfg.Identity.Token,
			SignKey: jsonCfg.Identity.SignKey,
			Timeout: time.Duration(jsonCfg.Identity.Timeout),
		},
		API: API{Address: jsonCfg.API.Address, Token: jsonCfg.API.Token},
	}

	return cfg, nil
}

// Duration accepts either a Go duration string ("2s") or a number of
// nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
