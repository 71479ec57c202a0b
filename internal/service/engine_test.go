// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/syncfile"
	"github.com/MKhiriev/go-family-sync/models"
)

func readSyncFile(t *testing.T, fs afero.Fs, fam models.Family) models.SyncFileData {
	t.Helper()
	raw, err := afero.ReadFile(fs, syncFilePath(fam))
	require.NoError(t, err)
	file, err := syncfile.Decode(raw)
	require.NoError(t, err)
	return file
}

func TestEngine_FirstTimeSetup(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)

	require.NoError(t, d.engine.SwitchTenant(ctx, smiths))
	state := d.engine.State()
	assert.Equal(t, models.StatusNotConfigured, state.Status)
	assert.False(t, state.IsConfigured)
	assert.Equal(t, smiths.ID, state.FamilyID)

	d.domain.set(snapshotOf("ann", "bob"))
	require.NoError(t, d.engine.SelectSyncFile(capability.WithPath(ctx, syncDir)))

	state = d.engine.State()
	assert.Equal(t, models.StatusReady, state.Status)
	assert.True(t, state.IsConfigured)
	assert.Equal(t, "family-sync-smiths.json", state.FileName)
	assert.Nil(t, state.LastError)

	file := readSyncFile(t, fs, smiths)
	assert.Equal(t, syncfile.Version, file.Version)
	assert.Equal(t, smiths.ID, file.FamilyID)
	assert.Equal(t, smiths.Name, file.FamilyName)
	assert.False(t, file.Encrypted)
	assert.True(t, d.clock.Now().Equal(file.ExportedAt))

	got, err := syncfile.DecodeSnapshot(file.Data)
	require.NoError(t, err)
	assert.Equal(t, canonical(t, snapshotOf("ann", "bob")), canonical(t, got))

	handle, err := d.storages.Handles.Retrieve(ctx, smiths.ID)
	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.Equal(t, syncFilePath(smiths), handle.Locator)

	settings, err := d.storages.Settings.GetSettings(ctx, smiths.ID)
	require.NoError(t, err)
	assert.True(t, settings.SyncEnabled)
	require.NotNil(t, settings.LastSyncAt)
	assert.True(t, settings.LastSyncAt.Equal(file.ExportedAt))
}

func TestEngine_RoundTripBetweenDevices(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	laptop := newDevice(t, fs)
	phone := newDevice(t, fs)

	laptop.domain.set(snapshotOf("ann", "bob"))
	laptop.connect(smiths)

	require.NoError(t, phone.engine.SwitchTenant(ctx, smiths))
	require.NoError(t, phone.engine.LoadFromNewFile(capability.WithPath(ctx, syncFilePath(smiths))))

	assert.Equal(t, canonical(t, snapshotOf("ann", "bob")), canonical(t, phone.domain.get()))
	assert.Equal(t, 2, phone.domain.reloads, "once on switch and once after the load")

	state := phone.engine.State()
	assert.Equal(t, models.StatusReady, state.Status)
	assert.True(t, state.IsConfigured)

	cached, err := phone.storages.Snapshots.GetSnapshot(ctx, smiths.ID)
	require.NoError(t, err)
	assert.Equal(t, canonical(t, snapshotOf("ann", "bob")), canonical(t, cached))

	// The phone's change travels back.
	phone.clock.advance(time.Minute)
	phone.domain.set(snapshotOf("ann", "bob", "cid"))
	require.NoError(t, phone.engine.SyncNow(ctx, false))

	laptop.clock.advance(2 * time.Minute)
	require.NoError(t, laptop.engine.LoadFromFile(ctx))
	assert.Equal(t, canonical(t, snapshotOf("ann", "bob", "cid")), canonical(t, laptop.domain.get()))
}

func TestEngine_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	laptop := newDevice(t, fs)
	other := newDevice(t, fs)

	laptop.domain.set(snapshotOf("ann"))
	laptop.connect(smiths)

	require.NoError(t, other.engine.SwitchTenant(ctx, joneses))
	err := other.engine.LoadFromNewFile(capability.WithPath(ctx, syncFilePath(smiths)))
	require.ErrorIs(t, err, ErrTenantMismatch)

	state := other.engine.State()
	require.NotNil(t, state.LastError)
	assert.Equal(t, "tenant-mismatch", state.LastError.Kind)
	assert.False(t, state.LastError.Recoverable)
	assert.False(t, state.IsConfigured)

	handle, err := other.storages.Handles.Retrieve(ctx, joneses.ID)
	require.NoError(t, err)
	assert.Nil(t, handle, "a foreign file must not become the connection")

	cached, err := other.storages.Snapshots.GetSnapshot(ctx, joneses.ID)
	require.NoError(t, err)
	assert.Zero(t, cached.Len())
	assert.Equal(t, 1, other.domain.reloads, "only the switch reloads")
}

func TestEngine_SwitchTenantDropsConnection(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)
	d.connect(smiths)
	require.NoError(t, d.engine.SetSessionPassword([]byte("secret")))

	require.NoError(t, d.engine.SwitchTenant(ctx, joneses))
	state := d.engine.State()
	assert.Equal(t, joneses.ID, state.FamilyID)
	assert.False(t, state.IsConfigured)
	assert.Nil(t, d.engine.sessionPassword())

	require.ErrorIs(t, d.engine.SyncNow(ctx, false), ErrNotConfigured)

	// Switching back restores the first family's connection.
	require.NoError(t, d.engine.SwitchTenant(ctx, smiths))
	state = d.engine.State()
	assert.True(t, state.IsConfigured)
	assert.Equal(t, models.StatusReady, state.Status)
}

func TestEngine_ConflictRefusal(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	laptop := newDevice(t, fs)
	phone := newDevice(t, fs)

	laptop.domain.set(snapshotOf("ann"))
	laptop.connect(smiths)
	require.NoError(t, phone.engine.SwitchTenant(ctx, smiths))
	require.NoError(t, phone.engine.LoadFromNewFile(capability.WithPath(ctx, syncFilePath(smiths))))

	laptop.clock.advance(time.Minute)
	laptop.domain.set(snapshotOf("ann", "bob"))
	require.NoError(t, laptop.engine.SyncNow(ctx, false))

	phone.domain.set(snapshotOf("ann", "zoe"))
	check, err := phone.engine.CheckForConflicts(ctx)
	require.NoError(t, err)
	assert.True(t, check.HasConflict)
	require.NotNil(t, check.FileTimestamp)
	require.NotNil(t, check.LocalTimestamp)
	assert.True(t, check.FileTimestamp.After(*check.LocalTimestamp))

	err = phone.engine.SyncNow(ctx, false)
	require.ErrorIs(t, err, ErrConflictDetected)
	state := phone.engine.State()
	assert.Equal(t, models.StatusError, state.Status)
	require.NotNil(t, state.LastError)
	assert.Equal(t, "conflict-detected", state.LastError.Kind)

	file := readSyncFile(t, fs, smiths)
	got, err := syncfile.DecodeSnapshot(file.Data)
	require.NoError(t, err)
	assert.Equal(t, canonical(t, snapshotOf("ann", "bob")), canonical(t, got), "refused save must not touch the file")

	require.NoError(t, phone.engine.ForceSyncNow(ctx))
	state = phone.engine.State()
	assert.Equal(t, models.StatusReady, state.Status)
	assert.Nil(t, state.LastError)

	file = readSyncFile(t, fs, smiths)
	got, err = syncfile.DecodeSnapshot(file.Data)
	require.NoError(t, err)
	assert.Equal(t, canonical(t, snapshotOf("ann", "zoe")), canonical(t, got))
}

func TestEngine_ExternalChange(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	laptop := newDevice(t, fs)
	phone := newDevice(t, fs)

	laptop.connect(smiths)
	require.NoError(t, phone.engine.SwitchTenant(ctx, smiths))
	require.NoError(t, phone.engine.LoadFromNewFile(capability.WithPath(ctx, syncFilePath(smiths))))

	require.NoError(t, phone.engine.ExternalChange(ctx), "the file phone just loaded is not newer")

	laptop.clock.advance(time.Minute)
	require.NoError(t, laptop.engine.SyncNow(ctx, false))
	require.ErrorIs(t, phone.engine.ExternalChange(ctx), ErrConflictDetected)

	require.NoError(t, phone.engine.LoadFromFile(ctx))
	require.NoError(t, phone.engine.ExternalChange(ctx))
	assert.Equal(t, models.StatusReady, phone.engine.State().Status)
}

func TestEngine_EncryptedRoundTripAfterRestart(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)

	d.domain.set(snapshotOf("ann", "bob"))
	d.connect(smiths)
	d.clock.advance(time.Minute)
	require.NoError(t, d.engine.EnableEncryption(ctx, []byte("correct horse")))

	file := readSyncFile(t, fs, smiths)
	assert.True(t, file.Encrypted)
	assert.Equal(t, smiths.ID, file.FamilyID)
	raw, err := afero.ReadFile(fs, syncFilePath(smiths))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Checking", "plaintext must not leak into an encrypted file")

	d.start()
	require.NoError(t, d.engine.SwitchTenant(ctx, smiths))
	state := d.engine.State()
	assert.Equal(t, models.StatusReady, state.Status)
	assert.True(t, state.Encrypted)
	assert.True(t, state.NeedsPassword)

	require.ErrorIs(t, d.engine.LoadFromFile(ctx), ErrPasswordRequired)
	assert.True(t, d.engine.State().NeedsPassword)

	err = d.engine.DecryptPendingFile(ctx, []byte("wrong"))
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Zero(t, d.domain.get().Len())
	assert.Nil(t, d.engine.sessionPassword(), "a wrong password must not be kept")
	assert.True(t, d.engine.State().NeedsPassword)

	require.NoError(t, d.engine.DecryptPendingFile(ctx, []byte("correct horse")))
	assert.Equal(t, canonical(t, snapshotOf("ann", "bob")), canonical(t, d.domain.get()))
	state = d.engine.State()
	assert.False(t, state.NeedsPassword)
	assert.True(t, state.Encrypted)

	// Saves keep the file encrypted with the session password.
	d.clock.advance(time.Minute)
	d.domain.set(snapshotOf("ann"))
	require.NoError(t, d.engine.SyncNow(ctx, false))
	assert.True(t, readSyncFile(t, fs, smiths).Encrypted)

	require.ErrorIs(t, d.engine.DecryptPendingFile(ctx, []byte("correct horse")), ErrNoPendingFile)
}

func TestEngine_EncryptionWithoutPasswordNeverWritesPlaintext(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)
	d.connect(smiths)
	require.NoError(t, d.engine.EnableEncryption(ctx, []byte("pw")))
	before, err := afero.ReadFile(fs, syncFilePath(smiths))
	require.NoError(t, err)

	d.engine.ClearSessionPassword()
	d.clock.advance(time.Minute)
	require.ErrorIs(t, d.engine.SyncNow(ctx, false), ErrPasswordRequired)
	require.ErrorIs(t, d.engine.ForceSyncNow(ctx), ErrPasswordRequired)

	var buf bytes.Buffer
	_, err = d.engine.ManualExport(ctx, &buf)
	require.ErrorIs(t, err, ErrPasswordRequired)
	assert.Zero(t, buf.Len())

	after, err := afero.ReadFile(fs, syncFilePath(smiths))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEngine_DisableEncryption(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)
	d.domain.set(snapshotOf("ann"))
	d.connect(smiths)
	require.NoError(t, d.engine.EnableEncryption(ctx, []byte("pw")))

	d.clock.advance(time.Minute)
	require.NoError(t, d.engine.DisableEncryption(ctx))
	assert.False(t, readSyncFile(t, fs, smiths).Encrypted)
	assert.False(t, d.engine.State().Encrypted)
	assert.Nil(t, d.engine.sessionPassword())
}

func TestEngine_LegacyFile(t *testing.T) {
	ctx := context.Background()
	legacy := `{
  "version": "1.0",
  "exportedAt": "2025-12-01T10:00:00Z",
  "encrypted": false,
  "data": {"members": [{"id":"old","name":"old"}], "accounts": []}
}`

	t.Run("single family device accepts it", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		d := newDevice(t, fs)
		require.NoError(t, afero.WriteFile(fs, "/sync/legacy.json", []byte(legacy), 0o600))

		require.NoError(t, d.engine.SwitchTenant(ctx, smiths))
		require.NoError(t, d.engine.LoadFromNewFile(capability.WithPath(ctx, "/sync/legacy.json")))

		got := d.domain.get()
		require.Len(t, got.Members, 1)
		assert.JSONEq(t, `{"id":"old","name":"old"}`, string(got.Members[0]))
		assert.True(t, d.engine.State().IsConfigured)

		// The next save upgrades the file.
		d.clock.advance(time.Minute)
		require.NoError(t, d.engine.SyncNow(ctx, false))
		raw, err := afero.ReadFile(fs, "/sync/legacy.json")
		require.NoError(t, err)
		file, err := syncfile.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, syncfile.Version, file.Version)
		assert.Equal(t, smiths.ID, file.FamilyID)
	})

	t.Run("shared device refuses it", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		d := newDevice(t, fs)
		require.NoError(t, afero.WriteFile(fs, "/sync/legacy.json", []byte(legacy), 0o600))

		require.NoError(t, d.engine.SwitchTenant(ctx, joneses))
		require.NoError(t, d.engine.SwitchTenant(ctx, smiths))
		err := d.engine.LoadFromNewFile(capability.WithPath(ctx, "/sync/legacy.json"))
		require.ErrorIs(t, err, ErrTenantMismatch)
		assert.Zero(t, d.domain.get().Len())
	})
}

func TestEngine_CorruptFile(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)
	d.connect(smiths)

	require.NoError(t, afero.WriteFile(fs, syncFilePath(smiths), []byte(`{"version":"2.0","data":`), 0o600))
	err := d.engine.LoadFromFile(ctx)
	require.ErrorIs(t, err, ErrCorrupt)

	state := d.engine.State()
	assert.Equal(t, models.StatusError, state.Status)
	require.NotNil(t, state.LastError)
	assert.Equal(t, "corrupt", state.LastError.Kind)

	require.NoError(t, afero.WriteFile(fs, syncFilePath(smiths), []byte(`{"version":"3.0","data":{}}`), 0o600))
	require.ErrorIs(t, d.engine.LoadFromFile(ctx), ErrCorrupt)

	require.NoError(t, afero.WriteFile(fs, syncFilePath(smiths), nil, 0o600))
	require.NoError(t, d.engine.LoadFromFile(ctx), "an empty file has nothing to load")
	assert.Equal(t, models.StatusReady, d.engine.State().Status)
}

func TestEngine_EncryptedFlagMismatchKeepsData(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)
	d.domain.set(snapshotOf("ann", "bob"))
	d.connect(smiths)
	require.NoError(t, d.storages.Snapshots.ReplaceSnapshot(ctx, smiths.ID, snapshotOf("ann", "bob")))
	d.clock.advance(time.Minute)
	require.NoError(t, d.engine.EnableEncryption(ctx, []byte("pw")))

	raw, err := afero.ReadFile(fs, syncFilePath(smiths))
	require.NoError(t, err)
	require.Contains(t, string(raw), `"encrypted": true`)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "envelope marked plain", raw: strings.Replace(string(raw), `"encrypted": true`, `"encrypted": false`, 1)},
		{name: "no collections", raw: `{"version":"2.0","familyId":"fam-smith","encrypted":false,"data":{"foo":1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, afero.WriteFile(fs, syncFilePath(smiths), []byte(tt.raw), 0o600))
			require.ErrorIs(t, d.engine.LoadFromFile(ctx), ErrCorrupt)

			assert.Equal(t, 3, d.domain.get().Len())
			cached, err := d.storages.Snapshots.GetSnapshot(ctx, smiths.ID)
			require.NoError(t, err)
			assert.Equal(t, 3, cached.Len())
		})
	}
}

func TestEngine_DebouncedAutoSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)
	d.debounce = 50 * time.Millisecond
	d.start()
	d.connect(smiths)
	require.Equal(t, int32(1), d.provider.writes.Load(), "initial save")

	for i := range 5 {
		d.domain.set(snapshotOf(strings.Repeat("x", i+1)))
		d.engine.SnapshotChanged()
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return d.provider.writes.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(2), d.provider.writes.Load())

	got, err := syncfile.DecodeSnapshot(readSyncFile(t, fs, smiths).Data)
	require.NoError(t, err)
	assert.Equal(t, canonical(t, snapshotOf("xxxxx")), canonical(t, got))
}

func TestEngine_AutoSaveDisabled(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)
	d.debounce = 20 * time.Millisecond
	d.start()
	d.connect(smiths)

	require.NoError(t, d.engine.SetAutoSync(ctx, false))
	assert.False(t, d.engine.State().AutoSync)
	d.engine.SnapshotChanged()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), d.provider.writes.Load())

	require.NoError(t, d.engine.SetAutoSync(ctx, true))
	d.engine.SnapshotChanged()
	require.Eventually(t, func() bool { return d.provider.writes.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestEngine_SwitchTenantCancelsPendingSave(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)
	d.debounce = 80 * time.Millisecond
	d.start()
	d.connect(smiths)

	d.engine.SnapshotChanged()
	require.NoError(t, d.engine.SwitchTenant(ctx, joneses))

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), d.provider.writes.Load())
}

func TestEngine_Disconnect(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)
	d.connect(smiths)
	require.NoError(t, d.engine.EnableEncryption(ctx, []byte("pw")))

	require.NoError(t, d.engine.Disconnect(ctx))

	state := d.engine.State()
	assert.Equal(t, models.StatusNotConfigured, state.Status)
	assert.False(t, state.IsConfigured)
	assert.False(t, state.Encrypted)
	assert.Nil(t, d.engine.sessionPassword())

	exists, err := afero.Exists(fs, syncFilePath(smiths))
	require.NoError(t, err)
	assert.True(t, exists, "disconnect leaves the file in place")

	handle, err := d.storages.Handles.Retrieve(ctx, smiths.ID)
	require.NoError(t, err)
	assert.Nil(t, handle)

	settings, err := d.storages.Settings.GetSettings(ctx, smiths.ID)
	require.NoError(t, err)
	assert.False(t, settings.SyncEnabled)
	assert.Nil(t, settings.LastSyncAt)

	require.ErrorIs(t, d.engine.SyncNow(ctx, false), ErrNotConfigured)
}

func TestEngine_ManualExportImport(t *testing.T) {
	ctx := context.Background()
	laptop := newDevice(t, afero.NewMemMapFs())
	phone := newDevice(t, afero.NewMemMapFs())

	require.NoError(t, laptop.engine.SwitchTenant(ctx, smiths))
	laptop.domain.set(snapshotOf("ann"))

	var buf bytes.Buffer
	name, err := laptop.engine.ManualExport(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, "family-sync-smiths.json", name)

	exported := buf.Bytes()

	require.NoError(t, phone.engine.SwitchTenant(ctx, joneses))
	require.ErrorIs(t, phone.engine.ManualImport(ctx, bytes.NewReader(exported)), ErrTenantMismatch)

	require.NoError(t, phone.engine.SwitchTenant(ctx, smiths))
	require.NoError(t, phone.engine.ManualImport(ctx, bytes.NewReader(exported)))
	assert.Equal(t, canonical(t, snapshotOf("ann")), canonical(t, phone.domain.get()))
	assert.False(t, phone.engine.State().IsConfigured, "manual import does not connect a file")

	require.ErrorIs(t, phone.engine.ManualImport(ctx, strings.NewReader("  ")), ErrCorrupt)
}

func TestEngine_ManualExportEncrypted(t *testing.T) {
	ctx := context.Background()
	laptop := newDevice(t, afero.NewMemMapFs())
	phone := newDevice(t, afero.NewMemMapFs())

	require.NoError(t, laptop.engine.SwitchTenant(ctx, smiths))
	laptop.domain.set(snapshotOf("ann"))
	require.NoError(t, laptop.engine.EnableEncryption(ctx, []byte("pw")))

	var buf bytes.Buffer
	_, err := laptop.engine.ManualExport(ctx, &buf)
	require.NoError(t, err)

	require.NoError(t, phone.engine.SwitchTenant(ctx, smiths))
	require.ErrorIs(t, phone.engine.ManualImport(ctx, bytes.NewReader(buf.Bytes())), ErrPasswordRequired)
	require.NoError(t, phone.engine.DecryptPendingFile(ctx, []byte("pw")))
	assert.Equal(t, canonical(t, snapshotOf("ann")), canonical(t, phone.domain.get()))
}

func TestEngine_Preconditions(t *testing.T) {
	ctx := context.Background()
	d := newDevice(t, afero.NewMemMapFs())

	require.ErrorIs(t, d.engine.SyncNow(ctx, false), ErrNoActiveTenant)
	require.ErrorIs(t, d.engine.SwitchTenant(ctx, models.Family{}), ErrNoActiveTenant)
	require.ErrorIs(t, d.engine.SetSessionPassword([]byte("pw")), ErrNoActiveTenant)

	require.NoError(t, d.engine.SwitchTenant(ctx, smiths))
	require.ErrorIs(t, d.engine.SyncNow(ctx, false), ErrNotConfigured)
	require.ErrorIs(t, d.engine.LoadFromFile(ctx), ErrNotConfigured)
	require.ErrorIs(t, d.engine.RequestPermission(ctx), ErrNotConfigured)
	require.ErrorIs(t, d.engine.DecryptPendingFile(ctx, []byte("pw")), ErrNoPendingFile)
	require.ErrorIs(t, d.engine.SetSessionPassword(nil), ErrPasswordRequired)
	require.ErrorIs(t, d.engine.EnableEncryption(ctx, nil), ErrPasswordRequired)
	require.ErrorIs(t, d.engine.SelectSyncFile(ctx), capability.ErrCancelled)

	check, err := d.engine.CheckForConflicts(ctx)
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, check.HasConflict)

	assert.Equal(t, models.StatusNotConfigured, d.engine.State().Status)

	require.NoError(t, d.engine.SignOut(ctx))
	assert.Empty(t, d.engine.State().FamilyID)
}

func TestEngine_ObserversSeeSyncing(t *testing.T) {
	ctx := context.Background()
	d := newDevice(t, afero.NewMemMapFs())

	var (
		mu     sync.Mutex
		states []models.SyncState
	)
	d.engine.OnStateChange(func(s models.SyncState) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	d.connect(smiths)
	require.NoError(t, d.engine.SyncNow(ctx, false))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, states)

	var sawSyncing bool
	for _, s := range states {
		if s.IsSyncing {
			sawSyncing = true
			assert.Equal(t, models.StatusSyncing, s.Status)
		}
	}
	assert.True(t, sawSyncing)
	last := states[len(states)-1]
	assert.False(t, last.IsSyncing)
	assert.Equal(t, models.StatusReady, last.Status)
}

func TestEngine_ForgetFamily(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	d := newDevice(t, fs)

	d.domain.set(snapshotOf("ann"))
	d.connect(smiths)
	require.NoError(t, d.storages.Snapshots.ReplaceSnapshot(ctx, smiths.ID, snapshotOf("ann")))

	t.Run("inactive family keeps the active one", func(t *testing.T) {
		require.NoError(t, d.engine.SwitchTenant(ctx, joneses))
		require.NoError(t, d.engine.ForgetFamily(ctx, smiths.ID))
		assert.Equal(t, joneses.ID, d.engine.State().FamilyID)

		tenants, err := d.storages.Tenants.ListTenants(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Family{joneses}, tenants)

		handle, err := d.storages.Handles.Retrieve(ctx, smiths.ID)
		require.NoError(t, err)
		assert.Nil(t, handle)

		cached, err := d.storages.Snapshots.GetSnapshot(ctx, smiths.ID)
		require.NoError(t, err)
		assert.Zero(t, cached.Len())

		exists, err := afero.Exists(fs, syncFilePath(smiths))
		require.NoError(t, err)
		assert.True(t, exists, "the sync file is not touched")
	})

	t.Run("active family is signed out", func(t *testing.T) {
		require.NoError(t, d.engine.ForgetFamily(ctx, ""))

		state := d.engine.State()
		assert.Empty(t, state.FamilyID)
		assert.Equal(t, models.StatusNotConfigured, state.Status)
		assert.Zero(t, d.domain.get().Len())

		tenants, err := d.storages.Tenants.ListTenants(ctx)
		require.NoError(t, err)
		assert.Empty(t, tenants)
	})

	t.Run("no active family", func(t *testing.T) {
		require.ErrorIs(t, d.engine.ForgetFamily(ctx, ""), ErrNoActiveTenant)
	})
}
