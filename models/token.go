// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// FamilyClaims is the claim set of an identity token. The identity provider
// puts the family the user belongs to into family_id; nothing else from
// the token is used.
type FamilyClaims struct {
	FamilyID   string `json:"family_id"`
	FamilyName string `json:"family_name,omitempty"`

	jwt.RegisteredClaims
}

// Family returns the family described by the claims.
func (c FamilyClaims) Family() Family {
	return Family{ID: c.FamilyID, Name: c.FamilyName}
}

// Validate implements jwt.ClaimsValidator; a token without a family is
// rejected during parsing.
func (c FamilyClaims) Validate() error {
	if c.FamilyID == "" {
		return errors.New("token carries no family_id claim")
	}
	return nil
}
