// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"strings"
	"sync"

	"github.com/MKhiriev/go-family-sync/models"
)

type staticIdentity struct {
	family models.Family

	mu    sync.RWMutex
	token string
}

// NewStaticIdentity returns an [IdentityAdapter] that always resolves to
// family.
func NewStaticIdentity(family models.Family) IdentityAdapter {
	return &staticIdentity{family: family}
}

func (s *staticIdentity) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

func (s *staticIdentity) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *staticIdentity) ResolveFamily(context.Context) (models.Family, error) {
	if s.family.ID == "" {
		return models.Family{}, ErrNoFamily
	}
	return s.family, nil
}
