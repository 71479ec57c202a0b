// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks domain entities before they enter a family's
// snapshot.
//
// A Validator validates one value. Callers may restrict a call to a subset
// of named fields; without names a default set for the value's type is
// checked. Errors are plain sentinels so callers can wrap them into their
// own taxonomy.
package validators

import "context"

// Validator validates arbitrary domain values.
type Validator interface {
	// Validate checks the provided value and optionally restricts the
	// check to specific named fields.
	Validate(context.Context, any, ...string) error
}
