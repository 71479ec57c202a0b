// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/models"
)

type settingsRepository struct {
	*DB
	logger *logger.Logger
}

// NewSettingsRepository returns a SettingsRepository over the cache
// database.
func NewSettingsRepository(db *DB, log *logger.Logger) SettingsRepository {
	return &settingsRepository{DB: db, logger: log}
}

// DefaultSettings are the settings of a family that never configured sync.
func DefaultSettings(familyID string) models.SyncSettings {
	return models.SyncSettings{FamilyID: familyID, AutoSyncEnabled: true}
}

func (r *settingsRepository) GetSettings(ctx context.Context, familyID string) (models.SyncSettings, error) {
	query, args, err := builder.
		Select("sync_enabled", "auto_sync_enabled", "encryption_enabled", "last_sync_at", "file_name").
		From(tableSyncSettings).
		Where(sq.Eq{"family_id": familyID}).
		ToSql()
	if err != nil {
		return models.SyncSettings{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	s := models.SyncSettings{FamilyID: familyID}
	var lastSync sql.NullTime
	err = r.DB.QueryRowContext(ctx, query, args...).
		Scan(&s.SyncEnabled, &s.AutoSyncEnabled, &s.EncryptionEnabled, &lastSync, &s.FileName)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSettings(familyID), nil
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "settingsRepository.GetSettings").
			Str("family_id", familyID).
			Msg("failed to read sync settings")
		return models.SyncSettings{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if lastSync.Valid {
		t := lastSync.Time.UTC()
		s.LastSyncAt = &t
	}
	return s, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, s models.SyncSettings) error {
	var lastSync sql.NullTime
	if s.LastSyncAt != nil {
		lastSync = sql.NullTime{Time: s.LastSyncAt.UTC(), Valid: true}
	}

	query, args, err := builder.
		Insert(tableSyncSettings).
		Columns("family_id", "sync_enabled", "auto_sync_enabled", "encryption_enabled", "last_sync_at", "file_name").
		Values(s.FamilyID, s.SyncEnabled, s.AutoSyncEnabled, s.EncryptionEnabled, lastSync, s.FileName).
		Suffix(`ON CONFLICT(family_id) DO UPDATE SET
			sync_enabled = excluded.sync_enabled,
			auto_sync_enabled = excluded.auto_sync_enabled,
			encryption_enabled = excluded.encryption_enabled,
			last_sync_at = excluded.last_sync_at,
			file_name = excluded.file_name`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "settingsRepository.SaveSettings").
			Str("family_id", s.FamilyID).
			Msg("failed to save sync settings")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
