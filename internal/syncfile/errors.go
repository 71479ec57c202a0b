// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncfile

import "errors"

var (
	// ErrMalformed is returned when the document is not valid JSON or is
	// missing required fields.
	ErrMalformed = errors.New("malformed sync file")

	// ErrUnsupportedVersion is returned for a major version this build
	// does not know how to read.
	ErrUnsupportedVersion = errors.New("unsupported sync file version")

	// ErrEncryptionMismatch is returned when the encrypted flag does not
	// match the shape of the data field.
	ErrEncryptionMismatch = errors.New("encrypted flag does not match data")
)
