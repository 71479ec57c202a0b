// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode/utf8"

	"github.com/MKhiriev/go-family-sync/models"
)

// Field names accepted by LedgerValidator.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldCurrency    = "currency"
	FieldAccountID   = "account_id"
	FieldAmount      = "amount"
	FieldDate        = "date"
	FieldDescription = "description"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 1000
)

// LedgerValidator checks members, accounts and transactions.
type LedgerValidator struct{}

func NewLedgerValidator() Validator {
	return &LedgerValidator{}
}

// Validate accepts models.Member, models.Account and models.Transaction in
// value or pointer form. Any other type yields ErrUnsupportedType.
func (v *LedgerValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Member:
		return v.validateMember(value, fields...)
	case *models.Member:
		return v.validateMember(*value, fields...)

	case models.Account:
		return v.validateAccount(value, fields...)
	case *models.Account:
		return v.validateAccount(*value, fields...)

	case models.Transaction:
		return v.validateTransaction(value, fields...)
	case *models.Transaction:
		return v.validateTransaction(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *LedgerValidator) validateMember(m models.Member, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if m.ID == "" {
				return ErrEmptyID
			}
		case FieldName:
			if err := validateName(m.Name); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *LedgerValidator) validateAccount(a models.Account, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldCurrency}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if a.ID == "" {
				return ErrEmptyID
			}
		case FieldName:
			if err := validateName(a.Name); err != nil {
				return err
			}
		case FieldCurrency:
			if !isCurrencyCode(a.Currency) {
				return ErrInvalidCurrency
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *LedgerValidator) validateTransaction(tx models.Transaction, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldAccountID, FieldAmount, FieldDate, FieldDescription}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if tx.ID == "" {
				return ErrEmptyID
			}
		case FieldAccountID:
			if tx.AccountID == "" {
				return ErrEmptyAccountID
			}
		case FieldAmount:
			if tx.Amount.IsZero() {
				return ErrZeroAmount
			}
		case FieldDate:
			if tx.Date.IsZero() {
				return ErrEmptyDate
			}
		case FieldDescription:
			if utf8.RuneCountInString(tx.Description) > maxDescriptionLength {
				return ErrDescriptionLong
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// isCurrencyCode reports whether code has the shape of an ISO 4217 code:
// three upper-case ASCII letters.
func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
