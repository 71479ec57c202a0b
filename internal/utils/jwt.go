package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-family-sync/models"
)

// GenerateFamilyToken signs an HS256 identity token carrying family.
//
// Parameters:
//
//	issuer        - value of the "iss" claim
//	family        - family written to the family_id and family_name claims
//	tokenDuration - lifetime of the token
//	signKey       - HMAC key
func GenerateFamilyToken(issuer string, family models.Family, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || family.ID == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := models.FamilyClaims{
		FamilyID:   family.ID,
		FamilyName: family.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}
	return tokenString, nil
}

// ValidateFamilyToken verifies an HS256 token with signKey and returns its
// claims. Expired tokens and tokens without a family are rejected.
func ValidateFamilyToken(tokenString, signKey string) (models.FamilyClaims, error) {
	var claims models.FamilyClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.FamilyClaims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}
	return claims, nil
}

// ParseFamilyClaimsUnverified reads the claims without checking the
// signature. Only for tokens that came straight from the identity provider
// over TLS.
func ParseFamilyClaimsUnverified(tokenString string) (models.FamilyClaims, error) {
	var claims models.FamilyClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return models.FamilyClaims{}, fmt.Errorf("error occurred parsing token: %w", err)
	}
	if err := claims.Validate(); err != nil {
		return models.FamilyClaims{}, err
	}
	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer x"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
