// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter resolves which family the signed-in user belongs to.
//
// The remote implementation ([NewHTTPIdentityAdapter]) asks the identity
// provider over HTTP; the static one ([NewStaticIdentity]) returns a family
// from configuration for offline use. The identity provider is consulted
// for the family identifier only.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-family-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_adapter_mock.go -package=mock

// IdentityAdapter supplies the active family.
type IdentityAdapter interface {
	// SetToken stores the bearer token sent with every request.
	SetToken(token string)

	// Token returns the stored bearer token.
	Token() string

	// ResolveFamily returns the family of the current user. Returns
	// [ErrNoFamily] when the user does not belong to any family.
	ResolveFamily(ctx context.Context) (models.Family, error)
}
