// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import "errors"

var (
	ErrNoFamily        = errors.New("ledger has no family loaded")
	ErrAccountNotFound = errors.New("account not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrInvalidEntity   = errors.New("invalid entity")
)
