// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/models"
)

type handleRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewHandleRepository returns a HandleRepository over the handle database.
func NewHandleRepository(db *DB, log *logger.Logger) HandleRepository {
	return &handleRepository{DB: db, logger: log, now: time.Now}
}

func (r *handleRepository) Persist(ctx context.Context, familyID string, handle models.CapabilityHandle) error {
	createdAt := handle.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	query, args, err := builder.
		Insert(tableHandles).
		Columns("handle_key", "family_id", "kind", "locator", "name", "created_at", "updated_at").
		Values(models.HandleKey(familyID), familyID, handle.Kind, handle.Locator, handle.Name, createdAt.UTC(), r.now().UTC()).
		Suffix(`ON CONFLICT(handle_key) DO UPDATE SET
			kind = excluded.kind,
			locator = excluded.locator,
			name = excluded.name,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "handleRepository.Persist").
			Str("family_id", familyID).
			Msg("failed to upsert sync handle")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *handleRepository) Retrieve(ctx context.Context, familyID string) (*models.CapabilityHandle, error) {
	query, args, err := builder.
		Select("kind", "locator", "name", "created_at").
		From(tableHandles).
		Where("handle_key = ?", models.HandleKey(familyID)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var h models.CapabilityHandle
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&h.Kind, &h.Locator, &h.Name, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "handleRepository.Retrieve").
			Str("family_id", familyID).
			Msg("failed to read sync handle")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &h, nil
}

func (r *handleRepository) Delete(ctx context.Context, familyID string) error {
	query, args, err := builder.
		Delete(tableHandles).
		Where("handle_key = ?", models.HandleKey(familyID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "handleRepository.Delete").
			Str("family_id", familyID).
			Msg("failed to delete sync handle")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
