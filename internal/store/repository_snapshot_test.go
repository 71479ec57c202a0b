// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/models"
)

func TestSnapshotRepository_ReplaceSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	snap := models.DomainSnapshot{
		Members:      []json.RawMessage{json.RawMessage(`{"id":"m1"}`)},
		Transactions: []json.RawMessage{json.RawMessage(`{"id":"t1"}`), json.RawMessage(`{"id":"t2"}`)},
		Settings:     json.RawMessage(`{"currency":"EUR"}`),
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM cache_entities").WithArgs("fam-1").WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("DELETE FROM cache_settings").WithArgs("fam-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO cache_entities").
		WithArgs("fam-1", "members", 0, []byte(`{"id":"m1"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO cache_entities").
		WithArgs("fam-1", "transactions", 0, []byte(`{"id":"t1"}`), "fam-1", "transactions", 1, []byte(`{"id":"t2"}`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO cache_settings").
		WithArgs("fam-1", []byte(`{"currency":"EUR"}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceSnapshot(context.Background(), "fam-1", snap))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_ReplaceSnapshot_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM cache_entities").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM cache_settings").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO cache_entities").WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := repo.ReplaceSnapshot(context.Background(), "fam-1", models.DomainSnapshot{
		Goals: []json.RawMessage{json.RawMessage(`{}`)},
	})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_ReplaceSnapshot_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectBegin().WillReturnError(errors.New("busy"))

	err := repo.ReplaceSnapshot(context.Background(), "fam-1", models.DomainSnapshot{})
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestSnapshotRepository_GetSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT collection, payload FROM cache_entities").
		WithArgs("fam-1").
		WillReturnRows(sqlmock.NewRows([]string{"collection", "payload"}).
			AddRow("accounts", []byte(`{"id":"a1"}`)).
			AddRow("transactions", []byte(`{"id":"t1"}`)).
			AddRow("transactions", []byte(`{"id":"t2"}`)))
	mock.ExpectQuery("SELECT payload FROM cache_settings").
		WithArgs("fam-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`{"currency":"EUR"}`)))

	snap, err := repo.GetSnapshot(context.Background(), "fam-1")
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 2)
	assert.JSONEq(t, `{"id":"t2"}`, string(snap.Transactions[1]))
	assert.Len(t, snap.Accounts, 1)
	assert.Empty(t, snap.Members)
	assert.JSONEq(t, `{"currency":"EUR"}`, string(snap.Settings))
}

func TestSnapshotRepository_GetSnapshot_UnknownCollection(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT collection, payload FROM cache_entities").
		WillReturnRows(sqlmock.NewRows([]string{"collection", "payload"}).AddRow("budgets", []byte(`{}`)))

	_, err := repo.GetSnapshot(context.Background(), "fam-1")
	assert.ErrorIs(t, err, ErrUnknownCollection)
}
