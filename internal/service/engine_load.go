// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/crypto"
	"github.com/MKhiriev/go-family-sync/internal/syncfile"
	"github.com/MKhiriev/go-family-sync/models"
)

// importSource tells applySnapshot which settings the import may touch.
type importSource int

const (
	// fromConnection is the family's connected sync file.
	fromConnection importSource = iota
	// fromManual is a file handed over outside the connection.
	fromManual
)

// RequestPermission asks the host for access to the connected file. On
// success the file is loaded and auto-save resumes.
func (e *Engine) RequestPermission(ctx context.Context) error {
	return e.run(ctx, "request-permission", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}
		fc, err := e.openCapability(fam)
		if err != nil {
			return err
		}

		granted, err := fc.RequestGrant(ctx)
		if err != nil {
			return fmt.Errorf("request sync file permission: %w", err)
		}
		if !granted {
			e.update(func() { e.status = models.StatusNeedsPermission })
			return ErrPermissionDenied
		}
		e.update(func() { e.status = models.StatusReady })

		err = e.loadConnected(ctx, fam, fc)
		e.armIfAllowed()
		return err
	})
}

// LoadFromFile replaces the active family's local data with the contents
// of the connected file. A missing or empty file leaves local data alone.
func (e *Engine) LoadFromFile(ctx context.Context) error {
	return e.run(ctx, "load", func(ctx context.Context) error {
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
		return e.loadConnected(ctx, fam, fc)
	})
}

// LoadFromNewFile lets the user pick an existing sync file, checks it
// belongs to the active family and imports it. The file becomes the new
// connection only after those checks pass.
func (e *Engine) LoadFromNewFile(ctx context.Context) error {
	return e.run(ctx, "load-new", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}

		handle, err := e.deps.Picker.PickOpen(ctx)
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

		raw, err := fc.Read(ctx)
		if err != nil {
			return fmt.Errorf("read sync file: %w", err)
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return fmt.Errorf("%w: %s is empty", ErrCorrupt, fc.Name())
		}
		file, err := syncfile.Decode(raw)
		if err != nil {
			return err
		}
		if err = e.guardTenant(ctx, fam, file); err != nil {
			return err
		}
		return e.importFile(ctx, fam, file, &handle, fromConnection)
	})
}

// DecryptPendingFile opens the encrypted file that an earlier load parked
// for lack of a password. A wrong password keeps the file parked and is
// not remembered; the right one becomes the session password.
func (e *Engine) DecryptPendingFile(ctx context.Context, password []byte) error {
	return e.run(ctx, "decrypt", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}

		e.mu.RLock()
		pending := e.pending
		e.mu.RUnlock()

		if pending == nil {
			return ErrNoPendingFile
		}
		if pending.familyID != fam.ID {
			e.update(func() { e.pending = nil })
			return ErrTenantMismatch
		}
		if len(password) == 0 {
			return ErrPasswordRequired
		}

		pw := append([]byte(nil), password...)
		snapshot, err := e.openSnapshot(pending.file, pw)
		if err != nil {
			crypto.Wipe(pw)
			return err
		}

		e.update(func() {
			crypto.Wipe(e.password)
			e.password = pw
		})

		source := fromManual
		if pending.connected {
			source = fromConnection
		}
		return e.applySnapshot(ctx, fam, pending.file, snapshot, pending.handle, source)
	})
}

func (e *Engine) loadConnected(ctx context.Context, fam models.Family, fc capability.FileCapability) error {
	raw, err := fc.Read(ctx)
	if errors.Is(err, capability.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read sync file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	file, err := syncfile.Decode(raw)
	if err != nil {
		return err
	}
	if err = e.guardTenant(ctx, fam, file); err != nil {
		return err
	}
	return e.importFile(ctx, fam, file, nil, fromConnection)
}

// guardTenant refuses files written for another family. A legacy file
// carries no family; it is accepted only while the active family is the
// only one this device knows.
func (e *Engine) guardTenant(ctx context.Context, fam models.Family, file models.SyncFileData) error {
	if !file.IsLegacy() {
		if file.FamilyID != fam.ID {
			return ErrTenantMismatch
		}
		return nil
	}

	tenants, err := e.deps.Tenants.ListTenants(ctx)
	if err != nil {
		return fmt.Errorf("list families: %w", err)
	}
	for _, t := range tenants {
		if t.ID != fam.ID {
			return fmt.Errorf("%w: legacy file on a device shared by several families", ErrTenantMismatch)
		}
	}
	return nil
}

// importFile decrypts file when needed and replaces the family's data.
// An encrypted file read without a session password is parked until
// DecryptPendingFile.
func (e *Engine) importFile(ctx context.Context, fam models.Family, file models.SyncFileData, handle *models.CapabilityHandle, source importSource) error {
	password := e.sessionPassword()
	defer crypto.Wipe(password)

	snapshot, err := e.openSnapshot(file, password)
	if errors.Is(err, ErrPasswordRequired) {
		e.update(func() {
			e.pending = &pendingFile{
				familyID:  fam.ID,
				file:      file,
				handle:    handle,
				connected: source == fromConnection,
			}
		})
		return err
	}
	if err != nil {
		return err
	}
	return e.applySnapshot(ctx, fam, file, snapshot, handle, source)
}

func (e *Engine) openSnapshot(file models.SyncFileData, password []byte) (models.DomainSnapshot, error) {
	if !file.Encrypted {
		return syncfile.DecodeSnapshot(file.Data)
	}

	envelope, err := syncfile.DecodeEnvelope(file)
	if err != nil {
		return models.DomainSnapshot{}, err
	}
	if len(password) == 0 {
		return models.DomainSnapshot{}, ErrPasswordRequired
	}

	plain, err := e.deps.Envelopes.Decrypt(envelope, password)
	if err != nil {
		return models.DomainSnapshot{}, fmt.Errorf("decrypt sync file: %w", err)
	}
	defer crypto.Wipe(plain)

	return syncfile.DecodeSnapshot(plain)
}

// applySnapshot writes snapshot into the family's cache and reloads the
// domain stores. The connection and settings are stored first and put
// back when the cache cannot be replaced. Auto-save is held off meanwhile
// so the reload does not echo the file back.
func (e *Engine) applySnapshot(ctx context.Context, fam models.Family, file models.SyncFileData, snapshot models.DomainSnapshot, handle *models.CapabilityHandle, source importSource) error {
	if active := e.activeFamily(); active == nil || active.ID != fam.ID {
		return ErrTenantMismatch
	}

	e.autoSave.Disarm()
	defer e.armIfAllowed()

	e.mu.RLock()
	prevSettings := e.settings
	var prevHandle *models.CapabilityHandle
	if e.handle != nil && e.capOwner == fam.ID {
		h := *e.handle
		prevHandle = &h
	}
	e.mu.RUnlock()

	if handle != nil {
		if err := e.deps.Handles.Persist(ctx, fam.ID, *handle); err != nil {
			return fmt.Errorf("persist sync file handle: %w", err)
		}
	}

	settings := prevSettings
	settings.FamilyID = fam.ID
	if source == fromConnection {
		settings.SyncEnabled = true
		settings.EncryptionEnabled = file.Encrypted
		if !file.ExportedAt.IsZero() {
			exportedAt := file.ExportedAt.UTC()
			settings.LastSyncAt = &exportedAt
		}
		if handle != nil {
			settings.FileName = handle.Name
		}
		if err := e.deps.Settings.SaveSettings(ctx, settings); err != nil {
			e.restoreConnection(ctx, fam.ID, handle, prevHandle, nil)
			return fmt.Errorf("save sync settings: %w", err)
		}
	}

	replaced := false
	err := e.deps.Reloader.ReplaceAll(ctx, fam.ID, func(ctx context.Context) error {
		if err := e.deps.Snapshots.ReplaceSnapshot(ctx, fam.ID, snapshot); err != nil {
			return fmt.Errorf("replace cached snapshot: %w", err)
		}
		replaced = true
		return nil
	})
	if err != nil && !replaced {
		if source == fromConnection {
			prevSettings.FamilyID = fam.ID
			e.restoreConnection(ctx, fam.ID, handle, prevHandle, &prevSettings)
		}
		return err
	}

	e.update(func() {
		if handle != nil {
			h := *handle
			e.handle = &h
			e.capOwner = fam.ID
			e.unavailable = false
		}
		e.pending = nil
		e.settings = settings
		if e.handle != nil {
			e.status = models.StatusReady
		}
	})
	if err != nil {
		return fmt.Errorf("reload domain stores: %w", err)
	}

	e.log.Info().Str("func", "Engine.applySnapshot").
		Str("family_id", fam.ID).
		Bool("encrypted", file.Encrypted).
		Int("entities", snapshot.Len()).
		Msg("sync file loaded")
	return nil
}

// restoreConnection puts back the handle and settings that applySnapshot
// stored before the cache replace failed. Failures are only logged; the
// caller already returns the original error.
func (e *Engine) restoreConnection(ctx context.Context, familyID string, stored, prev *models.CapabilityHandle, prevSettings *models.SyncSettings) {
	log := e.log.ForFamily(familyID)

	if stored != nil {
		var err error
		if prev != nil {
			err = e.deps.Handles.Persist(ctx, familyID, *prev)
		} else {
			err = e.deps.Handles.Delete(ctx, familyID)
		}
		if err != nil {
			log.Err(err).Str("func", "Engine.restoreConnection").Msg("cannot restore sync file handle")
		}
	}
	if prevSettings != nil {
		if err := e.deps.Settings.SaveSettings(ctx, *prevSettings); err != nil {
			log.Err(err).Str("func", "Engine.restoreConnection").Msg("cannot restore sync settings")
		}
	}
}
