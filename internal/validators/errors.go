// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID         = errors.New("id is required")
	ErrEmptyName       = errors.New("name is required")
	ErrNameTooLong     = errors.New("name is too long")
	ErrInvalidCurrency = errors.New("currency must be a three-letter ISO 4217 code")
	ErrEmptyAccountID  = errors.New("account id is required")
	ErrZeroAmount      = errors.New("amount must not be zero")
	ErrEmptyDate       = errors.New("date is required")
	ErrDescriptionLong = errors.New("description is too long")
)
