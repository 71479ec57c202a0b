// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied. Callers should use [errors.Is] to match against them.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrUnknownCollection is returned when a cached entity belongs to a
	// collection this build does not know.
	ErrUnknownCollection = errors.New("unknown snapshot collection")
)
