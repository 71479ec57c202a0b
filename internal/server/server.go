// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net"

	"github.com/MKhiriev/go-family-sync/internal/config"
	"github.com/MKhiriev/go-family-sync/internal/handler"
	"github.com/MKhiriev/go-family-sync/internal/logger"
)

type server struct {
	address    string
	httpServer *httpServer
	logger     *logger.Logger

	// listening receives the bound address once the listener is open.
	listening chan<- string
}

func NewServer(handlers *handler.Handlers, cfg config.ClientAPI, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.Address == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		address:    cfg.Address,
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg.Address, logger),
		logger:     logger,
	}, nil
}

func (s *server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	if s.listening != nil {
		s.listening <- ln.Addr().String()
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", ln.Addr().String()).Msg("Launching HTTP server")
		serveErr <- s.httpServer.serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.httpServer.shutdown()
		<-serveErr
		s.logger.Info().Msg("server Shutdown gracefully")
		return nil
	case err = <-serveErr:
		return fmt.Errorf("serve: %w", err)
	}
}
