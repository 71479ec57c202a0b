// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package capability

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/MKhiriev/go-family-sync/models"
)

const syncFileMode os.FileMode = 0o600

// NativeProvider opens handles that point at paths on an afero filesystem.
type NativeProvider struct {
	fs       afero.Fs
	prompter Prompter
}

// NewNativeProvider builds a provider over fs. prompter is consulted by
// RequestGrant; a nil prompter approves every request.
func NewNativeProvider(fs afero.Fs, prompter Prompter) *NativeProvider {
	if prompter == nil {
		prompter = AutoApprove{}
	}
	return &NativeProvider{fs: fs, prompter: prompter}
}

// Open implements Provider.
func (p *NativeProvider) Open(handle models.CapabilityHandle) (FileCapability, error) {
	if handle.Kind != models.HandleKindNative {
		return nil, fmt.Errorf("%w: handle kind %q", ErrUnavailable, handle.Kind)
	}
	if handle.Locator == "" {
		return nil, fmt.Errorf("%w: empty locator", ErrNotFound)
	}

	name := handle.Name
	if name == "" {
		name = filepath.Base(handle.Locator)
	}

	return &nativeFile{
		fs:       p.fs,
		path:     filepath.Clean(handle.Locator),
		name:     name,
		prompter: p.prompter,
	}, nil
}

type nativeFile struct {
	fs       afero.Fs
	path     string
	name     string
	prompter Prompter
}

func (f *nativeFile) Name() string {
	return f.name
}

// CheckGranted tests the file for read-write access. When the file does
// not exist yet, the parent directory must accept new files.
func (f *nativeFile) CheckGranted(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	file, err := f.fs.OpenFile(f.path, os.O_RDWR, syncFileMode)
	if err == nil {
		_ = file.Close()
		return true, nil
	}
	if errors.Is(err, os.ErrPermission) {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("check access to %s: %w", f.name, err)
	}

	tmp, err := afero.TempFile(f.fs, filepath.Dir(f.path), ".access-*")
	if err != nil {
		if errors.Is(err, os.ErrPermission) || errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("check directory of %s: %w", f.name, err)
	}
	tmpName := tmp.Name()
	_ = tmp.Close()
	_ = f.fs.Remove(tmpName)

	return true, nil
}

func (f *nativeFile) RequestGrant(ctx context.Context) (bool, error) {
	ok, err := f.prompter.Confirm(ctx, f.name)
	if err != nil {
		return false, fmt.Errorf("confirm access to %s: %w", f.name, err)
	}
	if !ok {
		return false, nil
	}
	return f.CheckGranted(ctx)
}

func (f *nativeFile) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		return nil, mapFSError(f.name, err)
	}
	return b, nil
}

// Write replaces the file through a temp file and rename so readers never
// observe a half-written document.
func (f *nativeFile) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := afero.TempFile(f.fs, dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return mapFSError(f.name, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = f.fs.Remove(tmpName) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return mapFSError(f.name, err)
	}
	if err = tmp.Close(); err != nil {
		return mapFSError(f.name, err)
	}
	if err = f.fs.Chmod(tmpName, syncFileMode); err != nil {
		return mapFSError(f.name, err)
	}
	if err = f.fs.Rename(tmpName, f.path); err != nil {
		return mapFSError(f.name, err)
	}
	return nil
}

func mapFSError(name string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%s: %w", name, ErrPermissionDenied)
	default:
		return fmt.Errorf("%s: %w", name, err)
	}
}
