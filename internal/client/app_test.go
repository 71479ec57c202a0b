// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/config"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/models"
)

func testConfig(dir string) *config.ClientConfig {
	return &config.ClientConfig{
		App: config.ClientApp{FamilyID: "smiths", FamilyName: "The Smiths"},
		Storage: config.ClientStorage{
			CacheDSN:   filepath.Join(dir, "cache.db"),
			HandlesDSN: filepath.Join(dir, "handles.db"),
		},
		Sync: config.ClientSync{
			Debounce:      time.Hour,
			KDFIterations: config.MinKDFIterations,
		},
		API: config.ClientAPI{Address: "127.0.0.1:0"},
	}
}

func newTestApp(t *testing.T, cfg *config.ClientConfig, fs afero.Fs) *App {
	t.Helper()

	app, err := NewApp(context.Background(), cfg, Options{Fs: fs}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_NilConfig(t *testing.T) {
	_, err := NewApp(context.Background(), nil, Options{}, nil)
	require.ErrorIs(t, err, ErrNilConfig)
}

func TestNewApp_BadIdentityURL(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Identity = config.ClientIdentity{URL: "://broken", Timeout: time.Second}

	_, err := NewApp(context.Background(), cfg, Options{}, logger.Nop())
	require.Error(t, err)
}

func TestApp_StartActivatesStaticFamily(t *testing.T) {
	app := newTestApp(t, testConfig(t.TempDir()), afero.NewMemMapFs())

	require.NoError(t, app.Start(context.Background()))

	state := app.Engine().State()
	assert.Equal(t, "smiths", state.FamilyID)
	assert.Equal(t, models.StatusNotConfigured, state.Status)
	assert.False(t, state.IsConfigured)
	assert.Equal(t, "smiths", app.Ledger().FamilyID())
}

func TestApp_StartWithoutFamily(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.App.FamilyID = ""
	app := newTestApp(t, cfg, afero.NewMemMapFs())

	require.Error(t, app.Start(context.Background()))
}

func TestApp_FileRoundTripAcrossDevices(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/shared", 0o755))

	first := newTestApp(t, testConfig(t.TempDir()), fs)
	require.NoError(t, first.Start(ctx))

	account, err := first.Ledger().AddAccount(ctx, "Checking", "EUR", decimal.RequireFromString("120.50"))
	require.NoError(t, err)

	require.NoError(t, first.Engine().SelectSyncFile(capability.WithPath(ctx, "/shared/family.json")))
	exists, err := afero.Exists(fs, "/shared/family.json")
	require.NoError(t, err)
	require.True(t, exists)

	// A second device with its own databases opens the same file.
	second := newTestApp(t, testConfig(t.TempDir()), fs)
	require.NoError(t, second.Start(ctx))
	require.NoError(t, second.Engine().LoadFromNewFile(capability.WithPath(ctx, "/shared/family.json")))

	accounts, err := second.Ledger().Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, account.ID, accounts[0].ID)

	balance, err := second.Ledger().Balance(account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("120.50")))

	state := second.Engine().State()
	assert.True(t, state.IsConfigured)
	assert.Equal(t, "family.json", state.FileName)
}

func TestApp_ConnectionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/shared", 0o755))
	cfg := testConfig(t.TempDir())

	first, err := NewApp(ctx, cfg, Options{Fs: fs}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Start(ctx))
	require.NoError(t, first.Engine().SelectSyncFile(capability.WithPath(ctx, "/shared/family.json")))
	require.NoError(t, first.Close())
	require.NoError(t, first.Close())

	restarted := newTestApp(t, cfg, fs)
	require.NoError(t, restarted.Start(ctx))

	state := restarted.Engine().State()
	assert.True(t, state.IsConfigured)
	assert.Equal(t, models.StatusReady, state.Status)
}

func TestApp_WatcherFollowsSyncFile(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/shared", 0o755))
	cfg := testConfig(t.TempDir())
	cfg.Sync.Watch = true

	app := newTestApp(t, cfg, fs)
	require.NotNil(t, app.watcher)
	require.NoError(t, app.Start(ctx))
	assert.Empty(t, app.watcher.Target())

	require.NoError(t, app.Engine().SelectSyncFile(capability.WithPath(ctx, "/shared/family.json")))
	assert.Equal(t, filepath.Clean("/shared/family.json"), app.watcher.Target())

	require.NoError(t, app.Engine().Disconnect(ctx))
	assert.Empty(t, app.watcher.Target())
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	app := newTestApp(t, testConfig(t.TempDir()), afero.NewMemMapFs())
	require.NoError(t, app.Start(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
