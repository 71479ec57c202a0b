// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-family-sync/internal/utils"
)

type versionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, versionResponse{
		Version: h.buildInfo.BuildVersion(),
		Date:    h.buildInfo.BuildDate(),
		Commit:  h.buildInfo.BuildCommit(),
	}, http.StatusOK)
}
