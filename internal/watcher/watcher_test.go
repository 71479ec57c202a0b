// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-family-sync/internal/logger"
)

const testDebounce = 50 * time.Millisecond

func startWatcher(t *testing.T, onChange ChangeFunc) *Watcher {
	t.Helper()
	w := New(onChange, testDebounce, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	return w
}

func counter(n *atomic.Int32) ChangeFunc {
	return func(context.Context) error {
		n.Add(1)
		return nil
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWatcher_CoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "family-sync-smiths.json")
	writeFile(t, file, "{}")

	var calls atomic.Int32
	w := startWatcher(t, counter(&calls))
	w.SetTarget(file)
	// give the loop time to add the directory
	time.Sleep(testDebounce)

	for i := 0; i < 5; i++ {
		writeFile(t, file, `{"n":1}`)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(3 * testDebounce)
	assert.EqualValues(t, 1, calls.Load())
}

func TestWatcher_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sync.json")

	var calls atomic.Int32
	w := startWatcher(t, counter(&calls))
	w.SetTarget(file)
	time.Sleep(testDebounce)

	tmp := filepath.Join(dir, ".sync.json.tmp")
	writeFile(t, tmp, "{}")
	require.NoError(t, os.Rename(tmp, file))

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sync.json")

	var calls atomic.Int32
	w := startWatcher(t, counter(&calls))
	w.SetTarget(file)
	time.Sleep(testDebounce)

	writeFile(t, filepath.Join(dir, "notes.txt"), "hello")

	time.Sleep(4 * testDebounce)
	assert.Zero(t, calls.Load())
}

func TestWatcher_Retarget(t *testing.T) {
	first := filepath.Join(t.TempDir(), "a.json")
	second := filepath.Join(t.TempDir(), "b.json")

	var calls atomic.Int32
	w := startWatcher(t, counter(&calls))
	w.SetTarget(first)
	w.SetTarget(second)
	assert.Equal(t, second, w.Target())
	time.Sleep(testDebounce)

	writeFile(t, first, "{}")
	time.Sleep(4 * testDebounce)
	assert.Zero(t, calls.Load())

	writeFile(t, second, "{}")
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_EmptyTargetStops(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sync.json")

	var calls atomic.Int32
	w := startWatcher(t, counter(&calls))
	w.SetTarget(file)
	time.Sleep(testDebounce)
	w.SetTarget("")
	time.Sleep(testDebounce)

	writeFile(t, file, "{}")
	time.Sleep(4 * testDebounce)
	assert.Zero(t, calls.Load())
	assert.Empty(t, w.Target())
}

func TestWatcher_CallbackErrorKeepsRunning(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sync.json")

	var calls atomic.Int32
	w := startWatcher(t, func(context.Context) error {
		calls.Add(1)
		return errors.New("conflict")
	})
	w.SetTarget(file)
	time.Sleep(testDebounce)

	writeFile(t, file, "{}")
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	writeFile(t, file, "{}")
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestNew_DefaultDebounce(t *testing.T) {
	w := New(nil, 0, nil)
	assert.Equal(t, DefaultDebounce, w.debounce)
}
