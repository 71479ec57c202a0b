// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/crypto"
	"github.com/MKhiriev/go-family-sync/internal/service"
	"github.com/MKhiriev/go-family-sync/internal/utils"
)

// maxRequestBody bounds JSON request bodies. Imports have their own limit.
const maxRequestBody = 1 << 20

// tenantRequest optionally names the family the caller expects to switch
// to. The family itself always comes from the identity provider.
type tenantRequest struct {
	FamilyID string `json:"family_id"`
}

type pathRequest struct {
	Path string `json:"path"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type autoSyncRequest struct {
	Enabled bool `json:"enabled"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

// respondState runs op and answers with the engine state. A failed op is
// answered with its error; the state then carries the same error.
func (h *Handler) respondState(w http.ResponseWriter, r *http.Request, op func(ctx context.Context) error) {
	if err := op(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, h.engine.State(), http.StatusOK)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, h.engine.State(), http.StatusOK)
}

// switchTenant activates the family the identity provider resolves. A
// family_id in the body that names another family is refused.
func (h *Handler) switchTenant(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, err)
		return
	}
	h.respondState(w, r, func(ctx context.Context) error {
		family, err := h.identity.ResolveFamily(ctx)
		if err != nil {
			return fmt.Errorf("resolve family: %w", err)
		}
		if req.FamilyID != "" && req.FamilyID != family.ID {
			return fmt.Errorf("%w: identity provider resolved %q", service.ErrTenantMismatch, family.ID)
		}
		return h.engine.SwitchTenant(ctx, family)
	})
}

func (h *Handler) forgetFamily(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "familyID")
	h.respondState(w, r, func(ctx context.Context) error {
		return h.engine.ForgetFamily(ctx, familyID)
	})
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, r, h.engine.SignOut)
}

func (h *Handler) initialize(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, r, h.engine.Initialize)
}

func (h *Handler) requestPermission(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, r, h.engine.RequestPermission)
}

func (h *Handler) selectSyncFile(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondState(w, r, func(ctx context.Context) error {
		return h.engine.SelectSyncFile(capability.WithPath(ctx, req.Path))
	})
}

func (h *Handler) disconnect(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, r, h.engine.Disconnect)
}

func (h *Handler) checkForConflicts(w http.ResponseWriter, r *http.Request) {
	check, err := h.engine.CheckForConflicts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, check, http.StatusOK)
}

// syncNow saves the snapshot. ?force=true skips the conflict check.
func (h *Handler) syncNow(w http.ResponseWriter, r *http.Request) {
	force := false
	if raw := r.URL.Query().Get("force"); raw != "" {
		var err error
		if force, err = strconv.ParseBool(raw); err != nil {
			h.writeError(w, r, fmt.Errorf("%w: force: %w", ErrInvalidRequest, err))
			return
		}
	}
	h.respondState(w, r, func(ctx context.Context) error {
		return h.engine.SyncNow(ctx, force)
	})
}

func (h *Handler) loadFromFile(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, r, h.engine.LoadFromFile)
}

func (h *Handler) loadFromNewFile(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondState(w, r, func(ctx context.Context) error {
		return h.engine.LoadFromNewFile(capability.WithPath(ctx, req.Path))
	})
}

func (h *Handler) decryptPendingFile(w http.ResponseWriter, r *http.Request) {
	h.withPassword(w, r, func(ctx context.Context, pw []byte) error {
		return h.engine.DecryptPendingFile(ctx, pw)
	})
}

func (h *Handler) enableEncryption(w http.ResponseWriter, r *http.Request) {
	h.withPassword(w, r, h.engine.EnableEncryption)
}

func (h *Handler) disableEncryption(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, r, h.engine.DisableEncryption)
}

func (h *Handler) setSessionPassword(w http.ResponseWriter, r *http.Request) {
	h.withPassword(w, r, func(_ context.Context, pw []byte) error {
		return h.engine.SetSessionPassword(pw)
	})
}

func (h *Handler) clearSessionPassword(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearSessionPassword()
	_, _ = utils.WriteJSON(w, h.engine.State(), http.StatusOK)
}

// withPassword decodes a password body, runs op with it and wipes the
// buffer afterwards. The engine keeps its own copy.
func (h *Handler) withPassword(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, pw []byte) error) {
	var req passwordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	pw := []byte(req.Password)
	defer crypto.Wipe(pw)

	h.respondState(w, r, func(ctx context.Context) error {
		return op(ctx, pw)
	})
}

func (h *Handler) setAutoSync(w http.ResponseWriter, r *http.Request) {
	var req autoSyncRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondState(w, r, func(ctx context.Context) error {
		return h.engine.SetAutoSync(ctx, req.Enabled)
	})
}

// manualExport answers with the sync file as an attachment.
func (h *Handler) manualExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := h.engine.ManualExport(r.Context(), &buf)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// manualImport reads a sync file from the request body.
func (h *Handler) manualImport(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, r, func(ctx context.Context) error {
		return h.engine.ManualImport(ctx, r.Body)
	})
}
