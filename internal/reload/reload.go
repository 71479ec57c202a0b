// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package reload refreshes the in-memory domain stores after the snapshot
// cache was replaced by a load.
package reload

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-family-sync/internal/logger"
)

// Reloadable is a domain store that re-reads its state from the cache.
type Reloadable interface {
	Reload(ctx context.Context, familyID string) error
}

// WriteHolder is a store that can hold back its own writes while the cache
// is replaced underneath it. HoldWrites blocks until pending writes are
// done and returns the function that lets them through again.
type WriteHolder interface {
	HoldWrites() (release func())
}

// ReloadFunc adapts a function to Reloadable.
type ReloadFunc func(ctx context.Context, familyID string) error

func (f ReloadFunc) Reload(ctx context.Context, familyID string) error {
	return f(ctx, familyID)
}

type entry struct {
	name  string
	store Reloadable
}

// Coordinator reloads every registered store in registration order.
type Coordinator struct {
	mu      sync.Mutex
	entries []entry
	log     *logger.Logger
}

func NewCoordinator(log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{log: log}
}

// Register adds store under name. Registering a name twice replaces the
// earlier store.
func (c *Coordinator) Register(name string, store Reloadable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.entries {
		if c.entries[i].name == name {
			c.entries[i].store = store
			return
		}
	}
	c.entries = append(c.entries, entry{name: name, store: store})
}

// Names lists the registered stores.
func (c *Coordinator) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.name)
	}
	return names
}

// ReloadAll reloads every store. A failing store does not stop the others;
// all failures are returned joined.
func (c *Coordinator) ReloadAll(ctx context.Context, familyID string) error {
	return c.reload(ctx, familyID, c.snapshot())
}

// ReplaceAll holds the writes of every WriteHolder store, runs replace and
// reloads all stores before letting writes through again. Nothing is
// reloaded when replace fails.
func (c *Coordinator) ReplaceAll(ctx context.Context, familyID string, replace func(ctx context.Context) error) error {
	entries := c.snapshot()

	var releases []func()
	for _, e := range entries {
		if h, ok := e.store.(WriteHolder); ok {
			releases = append(releases, h.HoldWrites())
		}
	}
	defer func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}()

	if err := replace(ctx); err != nil {
		return err
	}
	return c.reload(ctx, familyID, entries)
}

func (c *Coordinator) snapshot() []entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entry(nil), c.entries...)
}

func (c *Coordinator) reload(ctx context.Context, familyID string, entries []entry) error {
	var errs []error
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := e.store.Reload(ctx, familyID); err != nil {
			c.log.Err(err).Str("func", "Coordinator.ReloadAll").
				Str("store", e.name).
				Str("family_id", familyID).
				Msg("store reload failed")
			errs = append(errs, fmt.Errorf("reload %s: %w", e.name, err))
		}
	}
	return errors.Join(errs...)
}
