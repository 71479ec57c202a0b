// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/migrations"
)

// DB wraps a SQLite connection together with the logger used by the
// repositories built on it.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens the SQLite file at dsn, creating its directory if
// needed, and checks the connection.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	if err := ensureDir(dsn); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Str("dsn", dsn).Msg("error creating database directory")
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", withPragmas(dsn))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY between
	// our own goroutines.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("error pinging DB: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("dsn", dsn).Msg("connected to database successfully")

	return &DB{DB: conn, logger: log}, nil
}

// Migrate applies the given migration set.
func (db *DB) Migrate(set string) error {
	return migrations.Migrate(db.DB, set)
}

func ensureDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o700)
}

func withPragmas(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_busy_timeout=5000&_foreign_keys=on"
}
