// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-family-sync/internal/syncfile"
)

// MaxImportSize bounds the size of a manually imported file.
const MaxImportSize = 64 << 20

// ManualExport writes the active family's snapshot to w in the sync file
// format and returns the suggested file name. It works without a
// connected file; the encryption setting is honoured.
func (e *Engine) ManualExport(ctx context.Context, w io.Writer) (string, error) {
	var name string
	err := e.run(ctx, "manual-export", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}

		snapshot, err := e.deps.Source.Export(ctx)
		if err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}
		file, err := e.buildFile(fam, snapshot, e.settings.EncryptionEnabled, e.nowUTC())
		if err != nil {
			return err
		}
		raw, err := syncfile.Encode(file)
		if err != nil {
			return fmt.Errorf("encode sync file: %w", err)
		}
		if _, err = w.Write(raw); err != nil {
			return fmt.Errorf("write export: %w", err)
		}

		name = suggestedFileName(fam)
		return nil
	})
	return name, err
}

// ManualImport reads a sync file from r and replaces the active family's
// data with it. The connection and its settings are left alone.
func (e *Engine) ManualImport(ctx context.Context, r io.Reader) error {
	return e.run(ctx, "manual-import", func(ctx context.Context) error {
		fam, err := e.requireFamily()
		if err != nil {
			return err
		}

		raw, err := io.ReadAll(io.LimitReader(r, MaxImportSize+1))
		if err != nil {
			return fmt.Errorf("read import: %w", err)
		}
		if len(raw) > MaxImportSize {
			return fmt.Errorf("%w: import exceeds %d bytes", ErrCorrupt, MaxImportSize)
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return fmt.Errorf("%w: import is empty", ErrCorrupt)
		}

		file, err := syncfile.Decode(raw)
		if err != nil {
			return err
		}
		if err = e.guardTenant(ctx, fam, file); err != nil {
			return err
		}
		return e.importFile(ctx, fam, file, nil, fromManual)
	})
}
