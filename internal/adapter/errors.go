// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("identity provider internal error")

	// ErrNoFamily means the user is not a member of any family.
	ErrNoFamily = errors.New("user has no family")
	// ErrFamilyMismatch means the provider's answer contradicts the family
	// claim of the token.
	ErrFamilyMismatch = errors.New("identity response does not match token family")
)
