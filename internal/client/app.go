// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/MKhiriev/go-family-sync/internal/adapter"
	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/config"
	"github.com/MKhiriev/go-family-sync/internal/crypto"
	"github.com/MKhiriev/go-family-sync/internal/handler"
	"github.com/MKhiriev/go-family-sync/internal/ledger"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/reload"
	"github.com/MKhiriev/go-family-sync/internal/server"
	"github.com/MKhiriev/go-family-sync/internal/service"
	"github.com/MKhiriev/go-family-sync/internal/store"
	"github.com/MKhiriev/go-family-sync/internal/watcher"
	"github.com/MKhiriev/go-family-sync/internal/workers"
	"github.com/MKhiriev/go-family-sync/models"
)

// Options carries what differs between an interactive command and the
// long-running API process.
type Options struct {
	// Prompter confirms access to a sync file. Nil grants access without
	// asking.
	Prompter capability.Prompter
	// Fs is the filesystem sync files live on. Nil means the OS filesystem.
	Fs        afero.Fs
	BuildInfo models.AppBuildInfo
}

// App owns every long-lived component of the client.
type App struct {
	cfg       *config.ClientConfig
	storages  *store.ClientStorages
	ledger    *ledger.Store
	engine    *service.Engine
	identity  adapter.IdentityAdapter
	watcher   *watcher.Watcher
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	closeOnce  sync.Once
	closeError error
}

// NewApp opens the local databases and wires the engine to the domain
// stores, the identity provider and, when enabled, the file watcher.
func NewApp(ctx context.Context, cfg *config.ClientConfig, opts Options, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if log == nil {
		log = logger.Nop()
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	prompter := opts.Prompter
	if prompter == nil {
		prompter = capability.AutoApprove{}
	}

	identity, err := newIdentity(cfg, log)
	if err != nil {
		return nil, err
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	ledgerStore := ledger.NewStore(storages.Snapshots, log)
	reloader := reload.NewCoordinator(log)
	reloader.Register("ledger", ledgerStore)

	engine := service.NewEngine(service.EngineDeps{
		Handles:   storages.Handles,
		Snapshots: storages.Snapshots,
		Tenants:   storages.Tenants,
		Settings:  storages.Settings,
		Envelopes: crypto.NewEnvelopeService(cfg.Sync.KDFIterations),
		Provider:  capability.NewNativeProvider(fs, prompter),
		Picker:    capability.NewPathPicker(fs, cfg.Storage.SyncFilePath),
		Source:    ledgerStore,
		Reloader:  reloader,
		Logger:    log,
		Debounce:  cfg.Sync.Debounce,
	})
	ledgerStore.Subscribe(engine.SnapshotChanged)

	app := &App{
		cfg:       cfg,
		storages:  storages,
		ledger:    ledgerStore,
		engine:    engine,
		identity:  identity,
		buildInfo: opts.BuildInfo,
		logger:    log,
	}

	if cfg.Sync.Watch {
		app.watcher = watcher.New(engine.ExternalChange, cfg.Sync.Debounce, log)
		engine.OnStateChange(app.followSyncFile)
	}

	return app, nil
}

func newIdentity(cfg *config.ClientConfig, log *logger.Logger) (adapter.IdentityAdapter, error) {
	if cfg.Identity.URL == "" {
		return adapter.NewStaticIdentity(models.Family{
			ID:   cfg.App.FamilyID,
			Name: cfg.App.FamilyName,
		}), nil
	}

	identity, err := adapter.NewHTTPIdentityAdapter(cfg.Identity, log)
	if err != nil {
		return nil, fmt.Errorf("create identity adapter: %w", err)
	}
	return identity, nil
}

// Engine returns the sync engine.
func (a *App) Engine() service.SyncEngine {
	return a.engine
}

// Ledger returns the family-finance domain store.
func (a *App) Ledger() *ledger.Store {
	return a.ledger
}

// Start resolves the family from the identity provider and makes it the
// active tenant. A file connection that cannot be restored is reported in
// the engine state and is not an error here.
func (a *App) Start(ctx context.Context) error {
	family, err := a.identity.ResolveFamily(ctx)
	if err != nil {
		return fmt.Errorf("resolve family: %w", err)
	}

	a.logger.Info().
		Str("func", "App.Start").
		Str("family_id", family.ID).
		Msg("switching to family")

	if err = a.engine.SwitchTenant(ctx, family); err != nil && !recoverableOnStart(err) {
		return fmt.Errorf("switch family: %w", err)
	}
	return nil
}

// recoverableOnStart reports errors that leave the family active with a
// file connection the user can repair later.
func recoverableOnStart(err error) bool {
	return errors.Is(err, service.ErrUnavailable) ||
		errors.Is(err, service.ErrPermissionDenied) ||
		errors.Is(err, capability.ErrNotFound)
}

// Serve runs the local API and the file watcher until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	handlers, err := handler.NewHandlers(a.engine, a.ledger, a.identity, a.cfg.API, a.buildInfo, a.logger)
	if err != nil {
		return fmt.Errorf("create handlers: %w", err)
	}
	srv, err := server.NewServer(handlers, a.cfg.API, a.logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	w := workers.NewWorkers(a.logger).Add("api", srv)
	if a.watcher != nil {
		a.followSyncFile(a.engine.State())
		w.Add("watcher", a.watcher)
	}
	return w.Run(ctx)
}

// followSyncFile points the watcher at the active family's file. The
// watcher ignores a target it already has.
func (a *App) followSyncFile(state models.SyncState) {
	if a.watcher == nil {
		return
	}
	if !state.IsConfigured || state.FamilyID == "" {
		a.watcher.SetTarget("")
		return
	}

	handle, err := a.storages.Handles.Retrieve(context.Background(), state.FamilyID)
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "App.followSyncFile").Msg("cannot look up sync file handle")
		a.watcher.SetTarget("")
		return
	}
	if handle == nil || handle.Kind != models.HandleKindNative {
		a.watcher.SetTarget("")
		return
	}
	a.watcher.SetTarget(handle.Locator)
}

// Close stops the engine and closes the databases. Only the first call
// does any work.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.engine.Close()
		a.closeError = a.storages.Close()
	})
	return a.closeError
}
