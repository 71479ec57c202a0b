// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/crypto"
	"github.com/MKhiriev/go-family-sync/internal/syncfile"
	"github.com/MKhiriev/go-family-sync/models"
)

// SelectSyncFile asks the user for a save location, connects it to the
// active family and writes the current snapshot there. When that first
// save fails the connection is kept and the error is returned.
func (e *Engine) SelectSyncFile(ctx context.Context) error {
	return e.run(ctx, "select-file", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}

		handle, err := e.deps.Picker.PickSave(ctx, suggestedFileName(fam))
		if err != nil {
			e.markUnavailable(err)
			return fmt.Errorf("pick sync file: %w", err)
		}
		fc, err := e.deps.Provider.Open(handle)
		if err != nil {
			e.markUnavailable(err)
			return fmt.Errorf("open sync file: %w", err)
		}
		if err = grant(ctx, fc); err != nil {
			return err
		}

		if err = e.deps.Handles.Persist(ctx, fam.ID, handle); err != nil {
			return fmt.Errorf("persist sync file handle: %w", err)
		}

		settings := e.settings
		settings.FamilyID = fam.ID
		settings.SyncEnabled = true
		settings.FileName = fc.Name()
		if err = e.deps.Settings.SaveSettings(ctx, settings); err != nil {
			return fmt.Errorf("save sync settings: %w", err)
		}

		e.update(func() {
			h := handle
			e.handle = &h
			e.capOwner = fam.ID
			e.unavailable = false
			e.pending = nil
			e.settings = settings
			e.status = models.StatusReady
		})

		if err = e.writeSnapshot(ctx, fam, fc, settings); err != nil {
			return err
		}
		e.armIfAllowed()
		return nil
	})
}

// CheckForConflicts compares the file's export time with the local last
// sync time. A missing or empty file never conflicts.
func (e *Engine) CheckForConflicts(ctx context.Context) (models.ConflictCheck, error) {
	var check models.ConflictCheck
	err := e.run(ctx, "check-conflicts", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}
		fc, err := e.openCapability(fam)
		if err != nil {
			return err
		}
		if err = e.ensureGranted(ctx, fc); err != nil {
			return err
		}
		check, err = e.conflictCheck(ctx, fc)
		return err
	})
	return check, err
}

// SyncNow writes the current snapshot to the sync file. Without force the
// write is refused with ErrConflictDetected when the file changed since
// the last sync.
func (e *Engine) SyncNow(ctx context.Context, force bool) error {
	op := "sync"
	if force {
		op = "force-sync"
	}
	return e.run(ctx, op, func(ctx context.Context) error {
		return e.save(ctx, force)
	})
}

// ForceSyncNow overwrites the sync file regardless of conflicts.
func (e *Engine) ForceSyncNow(ctx context.Context) error {
	return e.SyncNow(ctx, true)
}

// ExternalChange is called when the sync file changed outside this
// process. It reports ErrConflictDetected when the file is newer than the
// local state; the caller decides whether to load it.
func (e *Engine) ExternalChange(ctx context.Context) error {
	return e.run(ctx, "external-change", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}
		if !e.configured() {
			return nil
		}
		fc, err := e.openCapability(fam)
		if err != nil {
			return err
		}
		if err = e.ensureGranted(ctx, fc); err != nil {
			return err
		}

		check, err := e.conflictCheck(ctx, fc)
		if err != nil {
			return err
		}
		if check.HasConflict {
			return conflictError(check)
		}
		return nil
	})
}

func (e *Engine) save(ctx context.Context, force bool) error {
	fam, err := e.requireFamily()
	if err != nil {
		return err
	}
	fc, err := e.openCapability(fam)
	if err != nil {
		return err
	}
	if err = e.ensureGranted(ctx, fc); err != nil {
		return err
	}

	if !force {
		check, err := e.conflictCheck(ctx, fc)
		if err != nil {
			return err
		}
		if check.HasConflict {
			return conflictError(check)
		}
	}
	return e.writeSnapshot(ctx, fam, fc, e.settings)
}

// writeSnapshot exports the domain stores, writes them through fc and
// records the export time as the last sync.
func (e *Engine) writeSnapshot(ctx context.Context, fam models.Family, fc capability.FileCapability, settings models.SyncSettings) error {
	snapshot, err := e.deps.Source.Export(ctx)
	if err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	exportedAt := e.nowUTC()
	if last := settings.LastSyncAt; last != nil && !exportedAt.After(*last) {
		exportedAt = last.Add(time.Millisecond)
	}

	file, err := e.buildFile(fam, snapshot, settings.EncryptionEnabled, exportedAt)
	if err != nil {
		return err
	}
	raw, err := syncfile.Encode(file)
	if err != nil {
		return fmt.Errorf("encode sync file: %w", err)
	}
	if err = fc.Write(ctx, raw); err != nil {
		return fmt.Errorf("write sync file: %w", err)
	}

	settings.FamilyID = fam.ID
	settings.SyncEnabled = true
	settings.LastSyncAt = &exportedAt
	settings.FileName = fc.Name()
	if err = e.deps.Settings.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("save sync settings: %w", err)
	}

	e.update(func() {
		e.settings = settings
		e.status = models.StatusReady
	})
	e.log.Info().Str("func", "Engine.writeSnapshot").
		Str("family_id", fam.ID).
		Bool("encrypted", file.Encrypted).
		Int("entities", snapshot.Len()).
		Msg("sync file written")
	return nil
}

// buildFile wraps snapshot into a sync file. An encrypted file needs the
// session password; plaintext is never written in its place.
func (e *Engine) buildFile(fam models.Family, snapshot models.DomainSnapshot, encrypt bool, exportedAt time.Time) (models.SyncFileData, error) {
	if !encrypt {
		return syncfile.NewPlainFile(fam, snapshot, exportedAt)
	}

	password := e.sessionPassword()
	if password == nil {
		return models.SyncFileData{}, ErrPasswordRequired
	}
	defer crypto.Wipe(password)

	plain, err := syncfile.EncodeSnapshot(snapshot)
	if err != nil {
		return models.SyncFileData{}, fmt.Errorf("encode snapshot: %w", err)
	}
	defer crypto.Wipe(plain)

	envelope, err := e.deps.Envelopes.Encrypt(plain, password)
	if err != nil {
		return models.SyncFileData{}, fmt.Errorf("encrypt snapshot: %w", err)
	}
	return syncfile.NewEncryptedFile(fam, envelope, exportedAt)
}

func (e *Engine) conflictCheck(ctx context.Context, fc capability.FileCapability) (models.ConflictCheck, error) {
	e.mu.RLock()
	local := e.settings.LastSyncAt
	e.mu.RUnlock()

	raw, err := fc.Read(ctx)
	if errors.Is(err, capability.ErrNotFound) {
		return models.ConflictCheck{LocalTimestamp: local}, nil
	}
	if err != nil {
		return models.ConflictCheck{}, fmt.Errorf("read sync file: %w", err)
	}

	header, err := syncfile.PeekHeader(raw)
	if err != nil {
		return models.ConflictCheck{}, err
	}
	return compareTimestamps(header.ExportedAt, local), nil
}

// compareTimestamps reports a conflict when the file carries an export
// time and local state either never synced or synced before it.
func compareTimestamps(file, local *time.Time) models.ConflictCheck {
	check := models.ConflictCheck{FileTimestamp: file, LocalTimestamp: local}
	switch {
	case file == nil:
	case local == nil:
		check.HasConflict = true
	default:
		check.HasConflict = file.After(*local)
	}
	return check
}

func conflictError(check models.ConflictCheck) error {
	if check.FileTimestamp == nil {
		return ErrConflictDetected
	}
	if check.LocalTimestamp == nil {
		return fmt.Errorf("%w: file exported at %s, never synced here",
			ErrConflictDetected, check.FileTimestamp.Format(time.RFC3339))
	}
	return fmt.Errorf("%w: file exported at %s, last sync at %s", ErrConflictDetected,
		check.FileTimestamp.Format(time.RFC3339), check.LocalTimestamp.Format(time.RFC3339))
}

// openCapability opens the connection of the active family. Writes through
// a connection opened for another family are refused.
func (e *Engine) openCapability(fam models.Family) (capability.FileCapability, error) {
	e.mu.RLock()
	handle, owner, unavailable := e.handle, e.capOwner, e.unavailable
	e.mu.RUnlock()

	switch {
	case unavailable:
		return nil, ErrUnavailable
	case handle == nil:
		return nil, ErrNotConfigured
	case owner != fam.ID:
		return nil, ErrTenantMismatch
	}

	fc, err := e.deps.Provider.Open(*handle)
	if err != nil {
		e.markUnavailable(err)
		return nil, fmt.Errorf("open sync file: %w", err)
	}
	return fc, nil
}

// ensureGranted checks the grant without prompting and parks the engine
// in needs-permission when it is missing.
func (e *Engine) ensureGranted(ctx context.Context, fc capability.FileCapability) error {
	granted, err := fc.CheckGranted(ctx)
	if err != nil {
		return fmt.Errorf("check sync file permission: %w", err)
	}
	if !granted {
		e.update(func() { e.status = models.StatusNeedsPermission })
		return ErrPermissionDenied
	}
	return nil
}

// grant checks the grant and asks for it when missing. Used right after
// a user gesture only.
func grant(ctx context.Context, fc capability.FileCapability) error {
	granted, err := fc.CheckGranted(ctx)
	if err != nil {
		return fmt.Errorf("check sync file permission: %w", err)
	}
	if granted {
		return nil
	}
	granted, err = fc.RequestGrant(ctx)
	if err != nil {
		return fmt.Errorf("request sync file permission: %w", err)
	}
	if !granted {
		return ErrPermissionDenied
	}
	return nil
}

func (e *Engine) configured() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.handle != nil
}

func (e *Engine) markUnavailable(err error) {
	if errors.Is(err, capability.ErrUnavailable) {
		e.update(func() { e.unavailable = true })
	}
}

// suggestedFileName is the default name offered by save pickers and used
// for manual exports.
func suggestedFileName(fam models.Family) string {
	name := fam.Name
	if name == "" {
		name = fam.ID
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "family"
	}
	return "family-sync-" + slug + ".json"
}
