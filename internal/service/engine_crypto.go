// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-family-sync/internal/crypto"
	"github.com/MKhiriev/go-family-sync/models"
)

// EnableEncryption turns encryption on with password as the session
// password and rewrites the sync file encrypted. If the rewrite fails both
// the setting and the previous password are restored.
func (e *Engine) EnableEncryption(ctx context.Context, password []byte) error {
	return e.run(ctx, "enable-encryption", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}
		if len(password) == 0 {
			return ErrPasswordRequired
		}

		prevSettings := e.settings
		prevPassword := e.sessionPassword()

		settings := prevSettings
		settings.FamilyID = fam.ID
		settings.EncryptionEnabled = true

		e.update(func() {
			crypto.Wipe(e.password)
			e.password = append([]byte(nil), password...)
			e.settings = settings
		})

		if err = e.applyEncryptionSetting(ctx, fam, settings); err != nil {
			e.update(func() {
				crypto.Wipe(e.password)
				e.password = prevPassword
				e.settings = prevSettings
			})
			return err
		}
		crypto.Wipe(prevPassword)
		return nil
	})
}

// DisableEncryption rewrites the sync file in plaintext and forgets the
// session password.
func (e *Engine) DisableEncryption(ctx context.Context) error {
	return e.run(ctx, "disable-encryption", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}

		prevSettings := e.settings
		settings := prevSettings
		settings.FamilyID = fam.ID
		settings.EncryptionEnabled = false

		e.update(func() { e.settings = settings })
		if err = e.applyEncryptionSetting(ctx, fam, settings); err != nil {
			e.update(func() { e.settings = prevSettings })
			return err
		}

		e.update(func() {
			crypto.Wipe(e.password)
			e.password = nil
		})
		return nil
	})
}

// applyEncryptionSetting persists settings and, when a file is connected,
// rewrites it in the new form. Conflicts are not overridden.
func (e *Engine) applyEncryptionSetting(ctx context.Context, fam models.Family, settings models.SyncSettings) error {
	if !e.configured() {
		if err := e.deps.Settings.SaveSettings(ctx, settings); err != nil {
			return fmt.Errorf("save sync settings: %w", err)
		}
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
	return e.writeSnapshot(ctx, fam, fc, settings)
}
