// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package capability

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/MKhiriev/go-family-sync/models"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// pathCtxKey carries the path chosen by the caller of an operation, such as
// a CLI flag or an API request field.
var pathCtxKey = contextKey("syncFilePath")

// WithPath attaches a chosen file path to ctx for the PathPicker.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathCtxKey, path)
}

// PathFromContext returns the path attached with WithPath.
func PathFromContext(ctx context.Context) (string, bool) {
	path, ok := ctx.Value(pathCtxKey).(string)
	return path, ok && path != ""
}

// PathPicker picks files by path. The path comes from the operation
// context first and falls back to a configured default.
type PathPicker struct {
	fs          afero.Fs
	defaultPath string
	now         func() time.Time
}

// NewPathPicker returns a picker over fs.
func NewPathPicker(fs afero.Fs, defaultPath string) *PathPicker {
	return &PathPicker{fs: fs, defaultPath: defaultPath, now: time.Now}
}

// PickSave accepts either a file path or a directory; for a directory the
// suggested name is appended.
func (p *PathPicker) PickSave(ctx context.Context, suggestedName string) (models.CapabilityHandle, error) {
	path, err := p.path(ctx)
	if err != nil {
		return models.CapabilityHandle{}, err
	}

	if isDir, _ := afero.IsDir(p.fs, path); isDir {
		path = filepath.Join(path, suggestedName)
	}

	return p.handle(path), nil
}

// PickOpen requires the file to exist.
func (p *PathPicker) PickOpen(ctx context.Context) (models.CapabilityHandle, error) {
	path, err := p.path(ctx)
	if err != nil {
		return models.CapabilityHandle{}, err
	}

	exists, err := afero.Exists(p.fs, path)
	if err != nil {
		return models.CapabilityHandle{}, mapFSError(filepath.Base(path), err)
	}
	if !exists {
		return models.CapabilityHandle{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotFound)
	}
	if isDir, _ := afero.IsDir(p.fs, path); isDir {
		return models.CapabilityHandle{}, fmt.Errorf("%s is a directory: %w", path, ErrNotFound)
	}

	return p.handle(path), nil
}

func (p *PathPicker) path(ctx context.Context) (string, error) {
	if path, ok := PathFromContext(ctx); ok {
		return filepath.Clean(path), nil
	}
	if p.defaultPath != "" {
		return filepath.Clean(p.defaultPath), nil
	}
	return "", ErrCancelled
}

func (p *PathPicker) handle(path string) models.CapabilityHandle {
	return models.CapabilityHandle{
		Kind:      models.HandleKindNative,
		Locator:   path,
		Name:      filepath.Base(path),
		CreatedAt: p.now().UTC(),
	}
}
