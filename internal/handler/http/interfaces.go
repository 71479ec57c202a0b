// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-family-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../../mock/ledger_mock.go -package=mock

// FamilyResolver supplies the family this device may switch to.
type FamilyResolver interface {
	ResolveFamily(ctx context.Context) (models.Family, error)
}

// Ledger is the part of the domain stores the API can read and change.
type Ledger interface {
	Members() ([]models.Member, error)
	Accounts() ([]models.Account, error)
	Transactions(accountID string) ([]models.Transaction, error)
	Balance(accountID string) (decimal.Decimal, error)

	AddMember(ctx context.Context, name string) (models.Member, error)
	AddAccount(ctx context.Context, name, currency string, opening decimal.Decimal) (models.Account, error)
	AddTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
}
