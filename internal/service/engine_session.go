// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/crypto"
	"github.com/MKhiriev/go-family-sync/models"
)

// SwitchTenant makes family the active tenant. The previous family's
// pending save, session password, pending encrypted file and open file
// connection are dropped, and the domain stores are reloaded from the new
// family's cache before its connection is initialized.
func (e *Engine) SwitchTenant(ctx context.Context, family models.Family) error {
	return e.run(ctx, "switch-tenant", func(ctx context.Context) error {
		e.update(func() {
			e.resetSessionLocked()
			if family.ID != "" {
				f := family
				e.family = &f
			}
		})
		if family.ID == "" {
			return ErrNoActiveTenant
		}

		if err := e.deps.Tenants.RegisterTenant(ctx, family); err != nil {
			return fmt.Errorf("register family: %w", err)
		}
		if err := e.deps.Reloader.ReloadAll(ctx, family.ID); err != nil {
			return fmt.Errorf("reload domain stores: %w", err)
		}
		return e.initialize(ctx)
	})
}

// SignOut drops the active family together with every session secret and
// empties the domain stores.
func (e *Engine) SignOut(ctx context.Context) error {
	return e.run(ctx, "sign-out", func(ctx context.Context) error {
		e.update(e.resetSessionLocked)
		if err := e.deps.Reloader.ReloadAll(ctx, ""); err != nil {
			return fmt.Errorf("reload domain stores: %w", err)
		}
		return nil
	})
}

// ForgetFamily deletes everything this device stores for familyID: its
// cache, sync settings, registry entry and file connection. The sync file
// itself is left alone. An empty familyID means the active family, which
// is signed out first.
func (e *Engine) ForgetFamily(ctx context.Context, familyID string) error {
	return e.run(ctx, "forget-family", func(ctx context.Context) error {
		if familyID == "" {
			fam, err := e.requireFamily()
			if err != nil {
				return err
			}
			familyID = fam.ID
		}

		if active := e.activeFamily(); active != nil && active.ID == familyID {
			e.update(e.resetSessionLocked)
			if err := e.deps.Reloader.ReloadAll(ctx, ""); err != nil {
				return fmt.Errorf("reload domain stores: %w", err)
			}
		}

		if err := e.deps.Tenants.DeleteTenant(ctx, familyID); err != nil {
			return fmt.Errorf("delete family data: %w", err)
		}
		if err := e.deps.Handles.Delete(ctx, familyID); err != nil {
			return fmt.Errorf("delete sync file handle: %w", err)
		}

		e.log.Info().Str("func", "Engine.ForgetFamily").
			Str("family_id", familyID).
			Msg("family removed from this device")
		return nil
	})
}

// resetSessionLocked forgets everything tied to the active family. Must
// hold mu.
func (e *Engine) resetSessionLocked() {
	e.autoSave.Disarm()
	crypto.Wipe(e.password)
	e.password = nil
	e.pending = nil
	e.handle = nil
	e.capOwner = ""
	e.unavailable = false
	e.settings = models.SyncSettings{}
	e.lastErr = nil
	e.family = nil
	e.status = models.StatusNotConfigured
}

// Initialize restores the active family's file connection. It never
// prompts: without a grant the engine waits in needs-permission. The file
// itself is not read.
func (e *Engine) Initialize(ctx context.Context) error {
	return e.run(ctx, "initialize", e.initialize)
}

func (e *Engine) initialize(ctx context.Context) error {
	fam, err := e.requireFamily()
	if err != nil {
		return err
	}

	settings, err := e.deps.Settings.GetSettings(ctx, fam.ID)
	if err != nil {
		return fmt.Errorf("load sync settings: %w", err)
	}
	handle, err := e.deps.Handles.Retrieve(ctx, fam.ID)
	if err != nil {
		return fmt.Errorf("load sync file handle: %w", err)
	}

	e.update(func() {
		e.settings = settings
		e.handle = nil
		e.capOwner = ""
		e.status = models.StatusNotConfigured
	})
	if handle == nil {
		return nil
	}

	fc, err := e.deps.Provider.Open(*handle)
	if err != nil {
		if errors.Is(err, capability.ErrUnavailable) {
			e.update(func() { e.unavailable = true })
		}
		return fmt.Errorf("open sync file: %w", err)
	}

	e.update(func() {
		e.handle = handle
		e.capOwner = fam.ID
	})

	granted, err := fc.CheckGranted(ctx)
	if err != nil {
		return fmt.Errorf("check sync file permission: %w", err)
	}
	if !granted {
		e.update(func() { e.status = models.StatusNeedsPermission })
		return nil
	}

	e.update(func() { e.status = models.StatusReady })
	e.armIfAllowed()
	return nil
}

// Disconnect forgets the file connection and the session password and
// turns sync off. The file itself is left alone.
func (e *Engine) Disconnect(ctx context.Context) error {
	return e.run(ctx, "disconnect", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}

		e.autoSave.Disarm()
		if err = e.deps.Handles.Delete(ctx, fam.ID); err != nil {
			return fmt.Errorf("forget sync file: %w", err)
		}

		settings := e.settings
		settings.FamilyID = fam.ID
		settings.SyncEnabled = false
		settings.EncryptionEnabled = false
		settings.LastSyncAt = nil
		settings.FileName = ""

		e.update(func() {
			e.handle = nil
			e.capOwner = ""
			crypto.Wipe(e.password)
			e.password = nil
			e.pending = nil
			e.settings = settings
			e.status = models.StatusNotConfigured
		})

		if err = e.deps.Settings.SaveSettings(ctx, settings); err != nil {
			return fmt.Errorf("save sync settings: %w", err)
		}
		return nil
	})
}

// SetAutoSync turns debounced saving on or off for the active family.
func (e *Engine) SetAutoSync(ctx context.Context, enabled bool) error {
	return e.run(ctx, "set-auto-sync", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}

		settings := e.settings
		settings.FamilyID = fam.ID
		settings.AutoSyncEnabled = enabled
		if err = e.deps.Settings.SaveSettings(ctx, settings); err != nil {
			return fmt.Errorf("save sync settings: %w", err)
		}
		e.update(func() { e.settings = settings })

		if enabled {
			e.armIfAllowed()
		} else {
			e.autoSave.Disarm()
		}
		return nil
	})
}

// SetSessionPassword keeps a copy of password for this session. The
// caller may wipe its own slice afterwards.
func (e *Engine) SetSessionPassword(password []byte) error {
	var err error
	e.update(func() {
		switch {
		case e.family == nil:
			err = ErrNoActiveTenant
		case len(password) == 0:
			err = ErrPasswordRequired
		default:
			crypto.Wipe(e.password)
			e.password = append([]byte(nil), password...)
		}
		e.lastErr = ToSyncError(err)
	})
	return err
}

// ClearSessionPassword wipes the session password.
func (e *Engine) ClearSessionPassword() {
	e.update(func() {
		crypto.Wipe(e.password)
		e.password = nil
	})
}

// SnapshotChanged is the mutation hook wired to the domain stores. It
// schedules a debounced save when the active family is connected,
// permitted and has auto-sync on.
func (e *Engine) SnapshotChanged() {
	e.mu.RLock()
	allowed := e.autoSaveAllowedLocked()
	var familyID string
	if e.family != nil {
		familyID = e.family.ID
	}
	e.mu.RUnlock()

	if !allowed {
		return
	}
	e.autoSave.Trigger(familyID)
}

func (e *Engine) autoSaveAllowedLocked() bool {
	if e.family == nil || e.handle == nil || e.capOwner != e.family.ID {
		return false
	}
	if e.status != models.StatusReady && e.status != models.StatusError {
		return false
	}
	return e.settings.SyncEnabled && e.settings.AutoSyncEnabled
}

func (e *Engine) armIfAllowed() {
	e.mu.RLock()
	allowed := e.autoSaveAllowedLocked()
	e.mu.RUnlock()

	if allowed {
		e.autoSave.Arm()
	}
}

// runAutoSave is the debounce callback. The save is dropped when a newer
// trigger or a disarm superseded it, or when the family it was scheduled
// for is no longer active.
func (e *Engine) runAutoSave(ctx context.Context, familyID string, generation uint64) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if !e.autoSave.current(generation) {
		return
	}

	e.mu.RLock()
	active := e.family != nil && e.family.ID == familyID
	allowed := e.autoSaveAllowedLocked()
	e.mu.RUnlock()

	if !active {
		e.log.Info().Str("func", "Engine.runAutoSave").Str("family_id", familyID).Msg("dropping auto-save scheduled for an inactive family")
		return
	}
	if !allowed {
		return
	}

	_ = e.runLocked(ctx, "auto-save", func(ctx context.Context) error {
		return e.save(ctx, false)
	})
}
