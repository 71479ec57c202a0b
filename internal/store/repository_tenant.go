// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/models"
)

type tenantRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewTenantRepository returns a TenantRegistry over the cache database.
func NewTenantRepository(db *DB, log *logger.Logger) TenantRegistry {
	return &tenantRepository{DB: db, logger: log, now: time.Now}
}

// RegisterTenant records the family. Registering again only refreshes a
// non-empty display name.
func (r *tenantRepository) RegisterTenant(ctx context.Context, family models.Family) error {
	query, args, err := builder.
		Insert(tableTenants).
		Columns("family_id", "family_name", "registered_at").
		Values(family.ID, family.Name, r.now().UTC()).
		Suffix("ON CONFLICT(family_id) DO UPDATE SET family_name = excluded.family_name WHERE excluded.family_name <> ''").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "tenantRepository.RegisterTenant").
			Str("family_id", family.ID).
			Msg("failed to register tenant")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *tenantRepository) ListTenants(ctx context.Context) ([]models.Family, error) {
	query, args, err := builder.
		Select("family_id", "family_name").
		From(tableTenants).
		OrderBy("registered_at", "family_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "tenantRepository.ListTenants").Msg("failed to query tenants")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var families []models.Family
	for rows.Next() {
		var f models.Family
		if err = rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		families = append(families, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return families, nil
}

func (r *tenantRepository) DeleteTenant(ctx context.Context, familyID string) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = clearFamilyRows(ctx, tx, familyID, tableEntities, tableCacheSettings, tableSyncSettings, tableTenants)
	if err != nil {
		r.logger.Err(err).
			Str("func", "tenantRepository.DeleteTenant").
			Str("family_id", familyID).
			Msg("failed to delete tenant")
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
