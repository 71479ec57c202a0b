// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/config"
	"github.com/MKhiriev/go-family-sync/internal/crypto"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/store"
	"github.com/MKhiriev/go-family-sync/models"
)

var (
	smiths  = models.Family{ID: "fam-smith", Name: "Smiths"}
	joneses = models.Family{ID: "fam-jones", Name: "Joneses"}
)

const syncDir = "/sync"

// testDomain stands in for the domain stores: it exports whatever was set
// last and reloads from the snapshot cache.
type testDomain struct {
	mu      sync.Mutex
	cache   store.SnapshotCache
	current models.DomainSnapshot
	reloads int
}

func (d *testDomain) Export(context.Context) (models.DomainSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current.Clone(), nil
}

func (d *testDomain) ReloadAll(ctx context.Context, familyID string) error {
	s, err := d.cache.GetSnapshot(ctx, familyID)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.current = s
	d.reloads++
	d.mu.Unlock()
	return nil
}

func (d *testDomain) ReplaceAll(ctx context.Context, familyID string, replace func(context.Context) error) error {
	if err := replace(ctx); err != nil {
		return err
	}
	return d.ReloadAll(ctx, familyID)
}

func (d *testDomain) set(s models.DomainSnapshot) {
	d.mu.Lock()
	d.current = s
	d.mu.Unlock()
}

func (d *testDomain) get() models.DomainSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current.Clone()
}

// clock is a manually advanced time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// countingProvider counts writes reaching the file.
type countingProvider struct {
	capability.Provider
	writes atomic.Int32
}

func (p *countingProvider) Open(h models.CapabilityHandle) (capability.FileCapability, error) {
	fc, err := p.Provider.Open(h)
	if err != nil {
		return nil, err
	}
	return &countingFile{FileCapability: fc, writes: &p.writes}, nil
}

type countingFile struct {
	capability.FileCapability
	writes *atomic.Int32
}

func (f *countingFile) Write(ctx context.Context, data []byte) error {
	f.writes.Add(1)
	return f.FileCapability.Write(ctx, data)
}

// device is one installation: its own databases and domain stores, and a
// filesystem that may be shared with other devices.
type device struct {
	t        *testing.T
	fs       afero.Fs
	storages *store.ClientStorages
	domain   *testDomain
	provider *countingProvider
	clock    *clock
	debounce time.Duration
	engine   *Engine
}

var testEnvelopes = crypto.NewEnvelopeService(crypto.MinIterations)

func newDevice(t *testing.T, fs afero.Fs) *device {
	t.Helper()
	dir := t.TempDir()
	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		CacheDSN:   filepath.Join(dir, "family-cache.db"),
		HandlesDSN: filepath.Join(dir, "family-handles.db"),
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, fs.MkdirAll(syncDir, 0o755))

	d := &device{
		t:        t,
		fs:       fs,
		storages: storages,
		provider: &countingProvider{Provider: capability.NewNativeProvider(fs, capability.AutoApprove{})},
		clock:    newClock(),
		debounce: time.Hour,
	}
	d.start()
	t.Cleanup(func() {
		d.engine.Close()
		_ = storages.Close()
	})
	return d
}

// start builds a fresh engine and domain over the device's databases, as
// after an application restart.
func (d *device) start() {
	if d.engine != nil {
		d.engine.Close()
	}
	d.domain = &testDomain{cache: d.storages.Snapshots}
	d.engine = NewEngine(EngineDeps{
		Handles:   d.storages.Handles,
		Snapshots: d.storages.Snapshots,
		Tenants:   d.storages.Tenants,
		Settings:  d.storages.Settings,
		Envelopes: testEnvelopes,
		Provider:  d.provider,
		Picker:    capability.NewPathPicker(d.fs, ""),
		Source:    d.domain,
		Reloader:  d.domain,
		Logger:    logger.Nop(),
		Debounce:  d.debounce,
		Now:       d.clock.Now,
	})
}

func (d *device) connect(fam models.Family) {
	d.t.Helper()
	ctx := context.Background()
	// the switch reloads the domain from the empty cache
	seeded := d.domain.get()
	require.NoError(d.t, d.engine.SwitchTenant(ctx, fam))
	d.domain.set(seeded)
	require.NoError(d.t, d.engine.SelectSyncFile(capability.WithPath(ctx, syncDir)))
}

func syncFilePath(fam models.Family) string {
	return filepath.Join(syncDir, suggestedFileName(fam))
}

func snapshotOf(members ...string) models.DomainSnapshot {
	s := models.DomainSnapshot{
		Accounts: []json.RawMessage{json.RawMessage(`{"id":"acc-1","name":"Checking","balance":"120.50"}`)},
		Settings: json.RawMessage(`{"currency":"EUR"}`),
	}
	for _, m := range members {
		s.Members = append(s.Members, json.RawMessage(`{"id":"`+m+`","name":"`+m+`"}`))
	}
	return s
}

// canonical renders s with compact entities and empty collections so that
// snapshots can be compared regardless of formatting.
func canonical(t *testing.T, s models.DomainSnapshot) string {
	t.Helper()
	compact := func(in []json.RawMessage) []json.RawMessage {
		out := make([]json.RawMessage, 0, len(in))
		for _, raw := range in {
			var b bytes.Buffer
			require.NoError(t, json.Compact(&b, raw))
			out = append(out, b.Bytes())
		}
		return out
	}
	c := models.DomainSnapshot{
		Members:               compact(s.Members),
		Accounts:              compact(s.Accounts),
		Transactions:          compact(s.Transactions),
		Assets:                compact(s.Assets),
		Goals:                 compact(s.Goals),
		RecurringTransactions: compact(s.RecurringTransactions),
	}
	if len(bytes.TrimSpace(s.Settings)) > 0 && string(bytes.TrimSpace(s.Settings)) != "null" {
		var b bytes.Buffer
		require.NoError(t, json.Compact(&b, s.Settings))
		c.Settings = b.Bytes()
	}
	out, err := json.Marshal(c)
	require.NoError(t, err)
	return string(out)
}
