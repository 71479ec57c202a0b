// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-family-sync/internal/config"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/migrations"
)

// ClientStorages groups the client repositories. Handles live in their own
// database so that clearing a family's cache keeps its file connection.
type ClientStorages struct {
	Handles   HandleRepository
	Snapshots SnapshotCache
	Tenants   TenantRegistry
	Settings  SettingsRepository

	cacheDB   *DB
	handlesDB *DB
}

// NewClientStorages opens both SQLite databases, applies their migrations
// and builds the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("func", "NewClientStorages").Msg("creating new storages...")

	cacheDB, err := NewConnectSQLite(ctx, cfg.CacheDSN, log)
	if err != nil {
		return nil, fmt.Errorf("cache database connection error: %w", err)
	}
	if err = cacheDB.Migrate(migrations.CacheSet); err != nil {
		_ = cacheDB.Close()
		return nil, fmt.Errorf("cache migration failed: %w", err)
	}

	handlesDB, err := NewConnectSQLite(ctx, cfg.HandlesDSN, log)
	if err != nil {
		_ = cacheDB.Close()
		return nil, fmt.Errorf("handle database connection error: %w", err)
	}
	if err = handlesDB.Migrate(migrations.HandlesSet); err != nil {
		_ = cacheDB.Close()
		_ = handlesDB.Close()
		return nil, fmt.Errorf("handle migration failed: %w", err)
	}

	return newClientStorages(cacheDB, handlesDB, log), nil
}

func newClientStorages(cacheDB, handlesDB *DB, log *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Handles:   NewHandleRepository(handlesDB, log),
		Snapshots: NewSnapshotRepository(cacheDB, log),
		Tenants:   NewTenantRepository(cacheDB, log),
		Settings:  NewSettingsRepository(cacheDB, log),
		cacheDB:   cacheDB,
		handlesDB: handlesDB,
	}
}

// Close closes both databases.
func (s *ClientStorages) Close() error {
	var errs []error
	if s.cacheDB != nil {
		errs = append(errs, s.cacheDB.Close())
	}
	if s.handlesDB != nil {
		errs = append(errs, s.handlesDB.Close())
	}
	return errors.Join(errs...)
}
