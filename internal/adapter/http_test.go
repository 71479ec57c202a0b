// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-family-sync/internal/config"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/utils"
	"github.com/MKhiriev/go-family-sync/models"
)

// newTestAdapter creates an httpIdentityAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL, token, signKey string) *httpIdentityAdapter {
	t.Helper()
	a, err := NewHTTPIdentityAdapter(config.ClientIdentity{
		URL:     serverURL,
		Token:   token,
		SignKey: signKey,
		Timeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpIdentityAdapter)
}

func familyToken(t *testing.T, family models.Family, key string) string {
	t.Helper()
	token, err := utils.GenerateFamilyToken("identity", family, time.Hour, key)
	require.NoError(t, err)
	return token
}

var smiths = models.Family{ID: "fam-smith", Name: "Smiths"}

func TestResolveFamily_Success(t *testing.T) {
	token := familyToken(t, smiths, "key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/family", r.URL.Path)
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"family_id":"fam-smith","family_name":"Smiths"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, token, "key")
	got, err := a.ResolveFamily(context.Background())
	require.NoError(t, err)
	assert.Equal(t, smiths, got)
}

func TestResolveFamily_RotatesToken(t *testing.T) {
	rotated := familyToken(t, smiths, "rotation-key")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer "+rotated)
		_, _ = w.Write([]byte(`{"family_id":"fam-smith"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "", "")
	got, err := a.ResolveFamily(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fam-smith", got.ID)
	assert.Equal(t, rotated, a.Token())
}

func TestResolveFamily_TokenDisagreesWithResponse(t *testing.T) {
	token := familyToken(t, models.Family{ID: "fam-jones"}, "key")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"family_id":"fam-smith"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, token, "")
	_, err := a.ResolveFamily(context.Background())
	require.ErrorIs(t, err, ErrFamilyMismatch)
}

func TestResolveFamily_BadSignature(t *testing.T) {
	token := familyToken(t, smiths, "other-key")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"family_id":"fam-smith"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, token, "key")
	_, err := a.ResolveFamily(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveFamily_HTTPErrors(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusBadRequest, "bad", ErrBadRequest},
		{http.StatusUnauthorized, "expired", ErrUnauthorized},
		{http.StatusForbidden, "", ErrForbidden},
		{http.StatusNotFound, "no family", ErrNoFamily},
		{http.StatusBadGateway, "", ErrBadGateway},
		{http.StatusInternalServerError, "boom", ErrInternalServerError},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, "", "")
			_, err := a.ResolveFamily(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolveFamily_EmptyFamily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"family_id":""}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "", "")
	_, err := a.ResolveFamily(context.Background())
	assert.ErrorIs(t, err, ErrNoFamily)
}

func TestResolveFamily_Teapot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "", "")
	_, err := a.ResolveFamily(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"localhost:8080", "http://localhost:8080", false},
		{"https://id.example.com/", "https://id.example.com", false},
		{"  ", "", true},
		{"http://", "", true},
	}
	for _, tt := range tests {
		got, err := normalizeBaseURL(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestStaticIdentity(t *testing.T) {
	s := NewStaticIdentity(smiths)
	got, err := s.ResolveFamily(context.Background())
	require.NoError(t, err)
	assert.Equal(t, smiths, got)

	s.SetToken(" tok ")
	assert.Equal(t, "tok", s.Token())

	_, err = NewStaticIdentity(models.Family{}).ResolveFamily(context.Background())
	assert.ErrorIs(t, err, ErrNoFamily)
}
