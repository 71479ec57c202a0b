// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member is a person sharing the family budget.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Account holds money in one currency.
type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// Transaction moves money in or out of an account. A negative amount is
// an expense.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	MemberID    string          `json:"memberId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
}
