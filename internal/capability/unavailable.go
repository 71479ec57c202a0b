// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package capability

import (
	"context"

	"github.com/MKhiriev/go-family-sync/models"
)

// UnavailableProvider is used on hosts without native file handles.
type UnavailableProvider struct{}

func (UnavailableProvider) Open(models.CapabilityHandle) (FileCapability, error) {
	return nil, ErrUnavailable
}

// UnavailablePicker is used on hosts without native file handles.
type UnavailablePicker struct{}

func (UnavailablePicker) PickSave(context.Context, string) (models.CapabilityHandle, error) {
	return models.CapabilityHandle{}, ErrUnavailable
}

func (UnavailablePicker) PickOpen(context.Context) (models.CapabilityHandle, error) {
	return models.CapabilityHandle{}, ErrUnavailable
}
