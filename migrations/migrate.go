// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations holds the embedded goose migrations for the two local
// SQLite databases.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed cache/*.sql handles/*.sql
var embedMigrations embed.FS

const (
	// CacheSet creates the tenant cache and settings tables.
	CacheSet = "cache"
	// HandlesSet creates the capability handle table.
	HandlesSet = "handles"
)

// goose keeps its base filesystem and dialect in package state.
var gooseMu sync.Mutex

// Migrate applies every pending migration of set to db.
func Migrate(db *sql.DB, set string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}
	if set != CacheSet && set != HandlesSet {
		return fmt.Errorf("migration error: unknown migration set %q", set)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, set); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
