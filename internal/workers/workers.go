// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-family-sync/internal/logger"
)

type named struct {
	name   string
	worker Worker
}

type Workers struct {
	workers []named
	logger  *logger.Logger
}

func NewWorkers(logger *logger.Logger) *Workers {
	return &Workers{logger: logger}
}

// Add registers worker under name. Nil workers are skipped so optional
// parts can be added unconditionally.
func (w *Workers) Add(name string, worker Worker) *Workers {
	if worker != nil {
		w.workers = append(w.workers, named{name: name, worker: worker})
	}
	return w
}

// Run starts every worker and waits for all of them. The first failure
// cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, n := range w.workers {
		g.Go(func() error {
			w.logger.Info().Str("worker", n.name).Msg("worker started")
			if err := n.worker.Run(ctx); err != nil {
				w.logger.Err(err).Str("worker", n.name).Msg("worker failed")
				return fmt.Errorf("%s: %w", n.name, err)
			}
			w.logger.Info().Str("worker", n.name).Msg("worker stopped")
			return nil
		})
	}
	return g.Wait()
}
