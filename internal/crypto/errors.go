// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrAuthenticationFailed is returned when the AEAD tag does not verify:
	// the password is wrong or the ciphertext was tampered with.
	ErrAuthenticationFailed = errors.New("envelope authentication failed")

	// ErrMalformedEnvelope is returned when the envelope cannot be decoded
	// or declares parameters this package does not support.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrEmptyPassword is returned when encryption or decryption is
	// attempted without a password.
	ErrEmptyPassword = errors.New("empty password")
)
