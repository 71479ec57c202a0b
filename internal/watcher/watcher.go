// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package watcher notices when another writer touches the sync file.
//
// The watch is placed on the file's directory because sync folders and
// atomic writers replace the file by renaming a temporary one over it,
// which drops a watch held on the file itself. Bursts of events are
// coalesced and reported once through the change callback.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-family-sync/internal/logger"
)

// DefaultDebounce is used when New gets a non-positive window.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is called after the watched file settled.
type ChangeFunc func(ctx context.Context) error

// Watcher follows a single file. The file can be replaced at any time with
// SetTarget, also while Run is active.
type Watcher struct {
	onChange ChangeFunc
	debounce time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	target string

	retarget chan struct{}
}

// New returns a watcher with no target.
func New(onChange ChangeFunc, debounce time.Duration, log *logger.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{
		onChange: onChange,
		debounce: debounce,
		log:      log,
		retarget: make(chan struct{}, 1),
	}
}

// SetTarget switches the watched file. An empty path stops watching.
func (w *Watcher) SetTarget(path string) {
	if path != "" {
		path = filepath.Clean(path)
	}

	w.mu.Lock()
	changed := w.target != path
	w.target = path
	w.mu.Unlock()

	if !changed {
		return
	}
	select {
	case w.retarget <- struct{}{}:
	default:
	}
}

// Target returns the watched file.
func (w *Watcher) Target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Run processes file events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	var (
		dir     string
		target  string
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		timerCh = nil
	}

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
		} else {
			timer.Reset(w.debounce)
		}
		timerCh = timer.C
	}

	follow := func() {
		next := w.Target()
		if next == target {
			return
		}
		stopTimer()

		nextDir := ""
		if next != "" {
			nextDir = filepath.Dir(next)
		}
		if nextDir != dir {
			if dir != "" {
				if rmErr := fw.Remove(dir); rmErr != nil && !errors.Is(rmErr, fsnotify.ErrNonExistentWatch) {
					w.log.Warn().Err(rmErr).Str("dir", dir).Msg("watcher: remove dir failed")
				}
			}
			dir = ""
			if nextDir != "" {
				if addErr := fw.Add(nextDir); addErr != nil {
					w.log.Warn().Err(addErr).Str("dir", nextDir).Msg("watcher: add dir failed")
					target = next
					return
				}
				dir = nextDir
			}
		}
		target = next
		w.log.Debug().Str("file", target).Msg("watcher: following")
	}

	follow()
	w.log.Info().Msg("watcher: started")

	for {
		select {
		case <-ctx.Done():
			stopTimer()
			w.log.Info().Msg("watcher: stopped")
			return nil

		case <-w.retarget:
			follow()

		case <-timerCh:
			timerCh = nil
			if w.onChange == nil {
				continue
			}
			if cbErr := w.onChange(ctx); cbErr != nil {
				w.log.Warn().Err(cbErr).Str("file", target).Msg("watcher: external change")
			}

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if target == "" || filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("watcher: event")
			schedule()

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(watchErr).Msg("watcher: error")
		}
	}
}
