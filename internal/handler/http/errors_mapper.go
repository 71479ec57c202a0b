// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/ledger"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/service"
	"github.com/MKhiriev/go-family-sync/internal/utils"
	"github.com/MKhiriev/go-family-sync/models"
)

type errorMapping struct {
	target error
	status int
	// kind overrides the engine's error kind for errors the engine does
	// not classify.
	kind string
}

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []errorMapping{
	{target: service.ErrPermissionDenied, status: http.StatusForbidden},
	{target: service.ErrAuthenticationFailed, status: http.StatusUnauthorized},
	{target: service.ErrTenantMismatch, status: http.StatusConflict},
	{target: service.ErrConflictDetected, status: http.StatusConflict},
	{target: service.ErrCorrupt, status: http.StatusUnprocessableEntity},
	{target: service.ErrUnavailable, status: http.StatusNotImplemented},
	{target: service.ErrNoActiveTenant, status: http.StatusPreconditionFailed},
	{target: service.ErrNotConfigured, status: http.StatusPreconditionFailed},
	{target: service.ErrPasswordRequired, status: http.StatusPreconditionRequired},
	{target: service.ErrNoPendingFile, status: http.StatusPreconditionFailed},

	{target: capability.ErrCancelled, status: http.StatusBadRequest, kind: "cancelled"},
	{target: capability.ErrNotFound, status: http.StatusNotFound, kind: "not-found"},

	{target: ledger.ErrNoFamily, status: http.StatusPreconditionFailed, kind: "no-active-tenant"},
	{target: ledger.ErrAccountNotFound, status: http.StatusNotFound, kind: "account-not-found"},
	{target: ledger.ErrMemberNotFound, status: http.StatusNotFound, kind: "member-not-found"},
	{target: ledger.ErrInvalidEntity, status: http.StatusBadRequest, kind: "invalid-entity"},

	{target: ErrEmptyAuthorizationHeader, status: http.StatusUnauthorized, kind: "unauthorized"},
	{target: ErrInvalidToken, status: http.StatusUnauthorized, kind: "unauthorized"},
	{target: ErrInvalidRequest, status: http.StatusBadRequest, kind: "bad-request"},
}

func statusFromError(err error) int {
	for _, m := range errorStatuses {
		if errors.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

func errorBody(err error) models.SyncError {
	body := *service.ToSyncError(err)
	for _, m := range errorStatuses {
		if errors.Is(err, m.target) {
			if m.kind != "" {
				body.Kind = m.kind
			}
			break
		}
	}
	return body
}

// writeError logs err and answers with its status and body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("request refused")
	}
	utils.WriteError(w, errorBody(err), status)
}
