// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	p := writeTempJSON(t, `{
		"app": {"family_id": "fam-1", "family_name": "Smiths"},
		"storage": {"cache_dsn": "c.db", "handles_dsn": "h.db", "sync_file": "/tmp/f.json"},
		"sync": {"debounce": "2s", "kdf_iterations": 150000, "watch": true},
		"identity": {"url": "http://idp", "token": "t", "sign_key": "k", "timeout": 3000000000},
		"api": {"address": "localhost:9999"}
	}`)

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "fam-1", cfg.App.FamilyID)
	assert.Equal(t, "Smiths", cfg.App.FamilyName)
	assert.Equal(t, Storage{CacheDSN: "c.db", HandlesDSN: "h.db", SyncFilePath: "/tmp/f.json"}, cfg.Storage)
	assert.Equal(t, Sync{Debounce: 2 * time.Second, KDFIterations: 150000, Watch: true}, cfg.Sync)
	assert.Equal(t, 3*time.Second, cfg.Identity.Timeout)
	assert.Equal(t, "localhost:9999", cfg.API.Address)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := parseJSON(writeTempJSON(t, `{"app":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	assert.Error(t, json.Unmarshal([]byte(`"later"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))

	out, err := json.Marshal(Duration(2 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(out))
}
