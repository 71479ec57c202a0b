// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/models"
)

// Collection names as stored in cache_entities.collection. They match the
// JSON field names of models.DomainSnapshot.
const (
	collectionMembers               = "members"
	collectionAccounts              = "accounts"
	collectionTransactions          = "transactions"
	collectionAssets                = "assets"
	collectionGoals                 = "goals"
	collectionRecurringTransactions = "recurringTransactions"
)

type collectionRef struct {
	name  string
	items *[]json.RawMessage
}

func collectionsOf(s *models.DomainSnapshot) []collectionRef {
	return []collectionRef{
		{collectionMembers, &s.Members},
		{collectionAccounts, &s.Accounts},
		{collectionTransactions, &s.Transactions},
		{collectionAssets, &s.Assets},
		{collectionGoals, &s.Goals},
		{collectionRecurringTransactions, &s.RecurringTransactions},
	}
}

type snapshotRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSnapshotRepository returns a SnapshotCache over the cache database.
func NewSnapshotRepository(db *DB, log *logger.Logger) SnapshotCache {
	return &snapshotRepository{DB: db, logger: log, now: time.Now}
}

// ReplaceSnapshot deletes every cached row of the family and writes the
// new snapshot inside one transaction, so readers see either the old or the
// new snapshot and never a mix.
func (r *snapshotRepository) ReplaceSnapshot(ctx context.Context, familyID string, snapshot models.DomainSnapshot) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).Str("func", "snapshotRepository.ReplaceSnapshot").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = clearFamilyRows(ctx, tx, familyID, tableEntities, tableCacheSettings); err != nil {
		r.logger.Err(err).Str("func", "snapshotRepository.ReplaceSnapshot").Str("family_id", familyID).Msg("failed to clear cached snapshot")
		return err
	}

	for _, c := range collectionsOf(&snapshot) {
		if err = insertEntities(ctx, tx, familyID, c.name, *c.items); err != nil {
			r.logger.Err(err).
				Str("func", "snapshotRepository.ReplaceSnapshot").
				Str("family_id", familyID).
				Str("collection", c.name).
				Msg("failed to insert cached entities")
			return err
		}
	}

	if len(snapshot.Settings) > 0 {
		var query string
		var args []any
		query, args, err = builder.
			Insert(tableCacheSettings).
			Columns("family_id", "payload", "updated_at").
			Values(familyID, []byte(snapshot.Settings), r.now().UTC()).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.Err(err).Str("func", "snapshotRepository.ReplaceSnapshot").Str("family_id", familyID).Msg("failed to insert cached settings")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		r.logger.Err(err).Str("func", "snapshotRepository.ReplaceSnapshot").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	r.logger.Debug().
		Str("func", "snapshotRepository.ReplaceSnapshot").
		Str("family_id", familyID).
		Int("entities", snapshot.Len()).
		Msg("cached snapshot replaced")
	return nil
}

func (r *snapshotRepository) GetSnapshot(ctx context.Context, familyID string) (models.DomainSnapshot, error) {
	var snapshot models.DomainSnapshot

	query, args, err := builder.
		Select("collection", "payload").
		From(tableEntities).
		Where(sq.Eq{"family_id": familyID}).
		OrderBy("collection", "position").
		ToSql()
	if err != nil {
		return snapshot, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "snapshotRepository.GetSnapshot").Str("family_id", familyID).Msg("failed to query cached entities")
		return snapshot, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	refs := make(map[string]*[]json.RawMessage)
	for _, c := range collectionsOf(&snapshot) {
		refs[c.name] = c.items
	}

	for rows.Next() {
		var collection string
		var payload []byte
		if err = rows.Scan(&collection, &payload); err != nil {
			return models.DomainSnapshot{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items, ok := refs[collection]
		if !ok {
			return models.DomainSnapshot{}, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
		}
		*items = append(*items, json.RawMessage(payload))
	}
	if err = rows.Err(); err != nil {
		return models.DomainSnapshot{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	query, args, err = builder.
		Select("payload").
		From(tableCacheSettings).
		Where(sq.Eq{"family_id": familyID}).
		ToSql()
	if err != nil {
		return models.DomainSnapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var settings []byte
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&settings)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		r.logger.Err(err).Str("func", "snapshotRepository.GetSnapshot").Str("family_id", familyID).Msg("failed to read cached settings")
		return models.DomainSnapshot{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	default:
		snapshot.Settings = json.RawMessage(settings)
	}

	return snapshot, nil
}

func clearFamilyRows(ctx context.Context, tx *sql.Tx, familyID string, tables ...string) error {
	for _, table := range tables {
		query, args, err := builder.Delete(table).Where(sq.Eq{"family_id": familyID}).ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: delete from %s: %w", ErrExecutingStatement, table, err)
		}
	}
	return nil
}

func insertEntities(ctx context.Context, tx *sql.Tx, familyID, collection string, items []json.RawMessage) error {
	for start := 0; start < len(items); start += entityBatchSize {
		end := min(start+entityBatchSize, len(items))

		insert := builder.Insert(tableEntities).Columns("family_id", "collection", "position", "payload")
		for i := start; i < end; i++ {
			insert = insert.Values(familyID, collection, i, []byte(items[i]))
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}
	return nil
}
