// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the auth middleware and request decoding. Callers can
// match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when a token is configured
	// and the request has no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidToken is returned when the bearer token does not match the
	// configured one.
	ErrInvalidToken = errors.New("invalid token in `Authorization` header")

	// ErrInvalidRequest is returned when a request body or query parameter
	// cannot be decoded.
	ErrInvalidRequest = errors.New("invalid request")
)
