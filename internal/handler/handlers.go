// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-family-sync/internal/config"
	"github.com/MKhiriev/go-family-sync/internal/handler/http"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/service"
	"github.com/MKhiriev/go-family-sync/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(engine service.SyncEngine, ledger http.Ledger, identity http.FamilyResolver, cfg config.ClientAPI, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Address == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(engine, ledger, identity, cfg, buildInfo, logger),
	}, nil
}
