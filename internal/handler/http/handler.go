// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-family-sync/internal/config"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/service"
	"github.com/MKhiriev/go-family-sync/models"
)

type Handler struct {
	engine    service.SyncEngine
	ledger    Ledger
	identity  FamilyResolver
	token     string
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(engine service.SyncEngine, ledger Ledger, identity FamilyResolver, cfg config.ClientAPI, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		engine:    engine,
		ledger:    ledger,
		identity:  identity,
		token:     cfg.Token,
		buildInfo: buildInfo,
		logger:    logger,
	}
}
