// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/crypto"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/store"
	"github.com/MKhiriev/go-family-sync/models"
)

// EngineDeps are the collaborators of an Engine.
type EngineDeps struct {
	Handles   store.HandleRepository
	Snapshots store.SnapshotCache
	Tenants   store.TenantRegistry
	Settings  store.SettingsRepository

	Envelopes crypto.EnvelopeService
	Provider  capability.Provider
	Picker    capability.Picker

	Source   SnapshotSource
	Reloader StoreReloader

	Logger   *logger.Logger
	Debounce time.Duration
	Now      func() time.Time
}

// pendingFile is an encrypted file read while no session password was set.
type pendingFile struct {
	familyID string
	file     models.SyncFileData
	// handle is set when the file came from a newly picked location that
	// becomes the connection once the file is imported.
	handle *models.CapabilityHandle
	// connected is set when the file is or becomes the family's
	// connection, as opposed to a manual import.
	connected bool
}

// Engine is the sync orchestrator for one device. It serves one active
// family at a time; switching families drops every secret and pending
// write of the previous one.
type Engine struct {
	deps EngineDeps
	log  *logger.Logger
	now  func() time.Time

	// opMu admits one operation at a time.
	opMu sync.Mutex

	// mu guards the fields below. Operations write them under mu while
	// holding opMu; State and SnapshotChanged only read.
	mu          sync.RWMutex
	family      *models.Family
	status      models.SyncStatus
	syncing     bool
	lastErr     *models.SyncError
	handle      *models.CapabilityHandle
	capOwner    string
	settings    models.SyncSettings
	password    []byte
	pending     *pendingFile
	unavailable bool
	observers   []func(models.SyncState)

	autoSave *autoSaveJob
}

var _ SyncEngine = (*Engine)(nil)

// NewEngine builds an engine with no active family.
func NewEngine(deps EngineDeps) *Engine {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	e := &Engine{
		deps:   deps,
		log:    deps.Logger,
		now:    deps.Now,
		status: models.StatusNotConfigured,
	}
	e.autoSave = newAutoSaveJob(deps.Debounce, e.runAutoSave)
	return e
}

// Close cancels pending saves, waits for a running one and wipes the
// session password.
func (e *Engine) Close() {
	e.autoSave.Stop()

	e.mu.Lock()
	crypto.Wipe(e.password)
	e.password = nil
	e.mu.Unlock()
}

// State returns the current derived state.
func (e *Engine) State() models.SyncState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stateLocked()
}

// OnStateChange registers fn to receive every new state. fn runs on the
// goroutine that caused the transition and must not call back into
// operations.
func (e *Engine) OnStateChange(fn func(models.SyncState)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.observers = append(e.observers, fn)
	e.mu.Unlock()
}

func (e *Engine) stateLocked() models.SyncState {
	s := models.SyncState{
		Status:          e.status,
		IsConfigured:    e.handle != nil,
		IsSyncing:       e.syncing,
		NeedsPermission: e.status == models.StatusNeedsPermission,
		Encrypted:       e.settings.EncryptionEnabled,
		AutoSync:        e.settings.AutoSyncEnabled,
		FileName:        e.settings.FileName,
	}
	if e.syncing {
		s.Status = models.StatusSyncing
	}
	if e.family != nil {
		s.FamilyID = e.family.ID
	}
	if s.FileName == "" && e.handle != nil {
		s.FileName = e.handle.Name
	}
	s.NeedsPassword = e.pending != nil || (e.settings.EncryptionEnabled && len(e.password) == 0)
	if e.lastErr != nil {
		errCopy := *e.lastErr
		s.LastError = &errCopy
	}
	return s
}

// update applies fn under mu and notifies observers afterwards.
func (e *Engine) update(fn func()) {
	e.mu.Lock()
	fn()
	state := e.stateLocked()
	observers := slices.Clone(e.observers)
	e.mu.Unlock()

	for _, o := range observers {
		o(state)
	}
}

// run executes one operation under the operation lock, exposing isSyncing
// for its whole duration and recording its outcome.
func (e *Engine) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	return e.runLocked(ctx, op, fn)
}

func (e *Engine) runLocked(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	e.update(func() { e.syncing = true })

	err := mapError(fn(ctx))

	e.update(func() {
		e.syncing = false
		e.complete(err)
	})

	log := e.opLogger(op)
	if err != nil {
		log.Warn().Err(err).Msg("sync operation failed")
	} else {
		log.Debug().Msg("sync operation finished")
	}
	return err
}

// complete derives the status after an operation. Must hold mu.
func (e *Engine) complete(err error) {
	if err == nil {
		e.lastErr = nil
		if e.status == models.StatusError {
			e.status = models.StatusReady
		}
		return
	}

	e.lastErr = ToSyncError(err)
	switch {
	case errors.Is(err, ErrPermissionDenied):
		if e.handle != nil {
			e.status = models.StatusNeedsPermission
		}
	case errors.Is(err, ErrNoActiveTenant),
		errors.Is(err, ErrNotConfigured),
		errors.Is(err, ErrPasswordRequired),
		errors.Is(err, ErrNoPendingFile),
		errors.Is(err, ErrUnavailable),
		errors.Is(err, capability.ErrCancelled):
	default:
		if e.handle != nil {
			e.status = models.StatusError
		}
	}
}

func (e *Engine) opLogger(op string) *logger.Logger {
	l := e.log.GetChildLogger()
	l.Logger = l.With().Str("op", op).Logger()
	if f := e.activeFamily(); f != nil {
		return l.ForFamily(f.ID)
	}
	return l
}

func (e *Engine) activeFamily() *models.Family {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.family == nil {
		return nil
	}
	f := *e.family
	return &f
}

// requireFamily returns the active family or ErrNoActiveTenant.
func (e *Engine) requireFamily() (models.Family, error) {
	f := e.activeFamily()
	if f == nil {
		return models.Family{}, ErrNoActiveTenant
	}
	return *f, nil
}

func (e *Engine) sessionPassword() []byte {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.password) == 0 {
		return nil
	}
	return append([]byte(nil), e.password...)
}

// nowUTC is the timestamp written into files and settings. Millisecond
// precision survives every storage the timestamp passes through.
func (e *Engine) nowUTC() time.Time {
	return e.now().UTC().Truncate(time.Millisecond)
}
