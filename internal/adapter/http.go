// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-family-sync/internal/config"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/utils"
	"github.com/MKhiriev/go-family-sync/models"
)

const familyPath = "/api/family"

type familyResponse struct {
	FamilyID   string `json:"family_id"`
	FamilyName string `json:"family_name"`
}

type httpIdentityAdapter struct {
	client  *resty.Client
	signKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPIdentityAdapter constructs the remote [IdentityAdapter]. The base
// URL comes from cfg.URL and is normalised; a token from cfg.Token is
// stored right away. When cfg.SignKey is set every token must verify with
// it before its family claim is trusted.
func NewHTTPIdentityAdapter(cfg config.ClientIdentity, log *logger.Logger) (IdentityAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid identity url: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	a := &httpIdentityAdapter{client: client, signKey: cfg.SignKey, logger: log}
	a.SetToken(cfg.Token)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpIdentityAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpIdentityAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ResolveFamily implements [IdentityAdapter]. It calls GET /api/family.
// A rotated token in the Authorization response header replaces the
// stored one. When the token carries a family claim the response must
// agree with it.
func (h *httpIdentityAdapter) ResolveFamily(ctx context.Context) (models.Family, error) {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	resp, err := req.Get(familyPath)
	if err != nil {
		return models.Family{}, fmt.Errorf("resolve family request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Family{}, err
	}

	if header := resp.Header().Get("Authorization"); header != "" {
		token, err := utils.ParseBearerToken(header)
		if err != nil {
			return models.Family{}, fmt.Errorf("resolve family parse bearer token: %w", err)
		}
		h.SetToken(token)
	}

	var body familyResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Family{}, fmt.Errorf("decode family response: %w", err)
	}
	if body.FamilyID == "" {
		return models.Family{}, ErrNoFamily
	}
	family := models.Family{ID: body.FamilyID, Name: body.FamilyName}

	claims, ok, err := h.tokenClaims()
	if err != nil {
		return models.Family{}, err
	}
	if ok && claims.FamilyID != family.ID {
		return models.Family{}, fmt.Errorf("%w: token %s, response %s", ErrFamilyMismatch, claims.FamilyID, family.ID)
	}

	h.logger.Debug().Str("func", "httpIdentityAdapter.ResolveFamily").
		Str("family_id", family.ID).
		Msg("family resolved")
	return family, nil
}

// tokenClaims reads the family claim of the stored token. ok is false when
// there is no token or, without a sign key, when it carries no family.
func (h *httpIdentityAdapter) tokenClaims() (models.FamilyClaims, bool, error) {
	token := h.Token()
	if token == "" {
		return models.FamilyClaims{}, false, nil
	}

	if h.signKey != "" {
		claims, err := utils.ValidateFamilyToken(token, h.signKey)
		if err != nil {
			return models.FamilyClaims{}, false, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return claims, true, nil
	}

	claims, err := utils.ParseFamilyClaimsUnverified(token)
	if err != nil {
		return models.FamilyClaims{}, false, nil
	}
	return claims, true, nil
}
