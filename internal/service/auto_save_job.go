// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"
)

// autoSaveJob is a trailing-edge debouncer. Every Trigger restarts the
// quiet period; the save runs once the period passes without a new
// trigger. There is no maximum wait.
type autoSaveJob struct {
	window time.Duration
	save   func(ctx context.Context, familyID string, generation uint64)

	mu         sync.Mutex
	armed      bool
	generation uint64
	timer      *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newAutoSaveJob(window time.Duration, save func(ctx context.Context, familyID string, generation uint64)) *autoSaveJob {
	if window <= 0 {
		window = 2 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &autoSaveJob{window: window, save: save, ctx: ctx, cancel: cancel}
}

// Arm lets Trigger schedule saves.
func (j *autoSaveJob) Arm() {
	j.mu.Lock()
	j.armed = true
	j.mu.Unlock()
}

// Disarm cancels the pending save, if any, and ignores triggers until the
// next Arm. A save that already started is not interrupted; it notices the
// new generation through current and gives up.
func (j *autoSaveJob) Disarm() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.armed = false
	j.generation++
	if j.timer != nil {
		j.timer.Stop()
		j.timer = nil
	}
}

// Trigger (re)starts the quiet period for familyID. It reports whether a
// save was scheduled.
func (j *autoSaveJob) Trigger(familyID string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.armed || j.ctx.Err() != nil {
		return false
	}

	j.generation++
	gen := j.generation
	if j.timer != nil {
		j.timer.Stop()
	}
	j.timer = time.AfterFunc(j.window, func() { j.fire(familyID, gen) })
	return true
}

// Pending reports whether a save is scheduled.
func (j *autoSaveJob) Pending() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.timer != nil
}

// current reports whether generation is still the latest trigger.
func (j *autoSaveJob) current(generation uint64) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.armed && j.generation == generation
}

func (j *autoSaveJob) fire(familyID string, generation uint64) {
	j.mu.Lock()
	if j.generation != generation || !j.armed || j.ctx.Err() != nil {
		j.mu.Unlock()
		return
	}
	j.timer = nil
	j.wg.Add(1)
	j.mu.Unlock()

	defer j.wg.Done()
	j.save(j.ctx, familyID, generation)
}

// Stop disarms the job and waits for a running save to return.
func (j *autoSaveJob) Stop() {
	j.Disarm()
	j.cancel()
	j.wg.Wait()
}
