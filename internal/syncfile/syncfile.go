// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-family-sync/models"
)

const (
	// Version is written into every new file.
	Version = "2.0"
	// LegacyVersion files have no familyId/familyName.
	LegacyVersion = "1.0"
)

// Header is the part of a sync file that can be read without touching
// the data payload.
type Header struct {
	Version    string     `json:"version"`
	ExportedAt *time.Time `json:"exportedAt,omitempty"`
	FamilyID   string     `json:"familyId,omitempty"`
	Encrypted  bool       `json:"encrypted"`
}

// NewPlainFile builds a current-version file holding snapshot in the clear.
func NewPlainFile(family models.Family, snapshot models.DomainSnapshot, exportedAt time.Time) (models.SyncFileData, error) {
	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		return models.SyncFileData{}, err
	}
	return models.SyncFileData{
		Version:    Version,
		ExportedAt: exportedAt.UTC(),
		FamilyID:   family.ID,
		FamilyName: family.Name,
		Encrypted:  false,
		Data:       data,
	}, nil
}

// NewEncryptedFile builds a current-version file holding envelope.
func NewEncryptedFile(family models.Family, envelope models.EncryptionEnvelope, exportedAt time.Time) (models.SyncFileData, error) {
	data, err := json.Marshal(envelope)
	if err != nil {
		return models.SyncFileData{}, fmt.Errorf("marshal envelope: %w", err)
	}
	return models.SyncFileData{
		Version:    Version,
		ExportedAt: exportedAt.UTC(),
		FamilyID:   family.ID,
		FamilyName: family.Name,
		Encrypted:  true,
		Data:       data,
	}, nil
}

// Encode serializes file as indented JSON.
func Encode(file models.SyncFileData) ([]byte, error) {
	if len(file.Data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrMalformed)
	}
	out, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sync file: %w", err)
	}
	return out, nil
}

// Decode parses a complete sync file. Legacy files have their tenant
// fields cleared so callers treat them as unattributed.
func Decode(b []byte) (models.SyncFileData, error) {
	var file models.SyncFileData
	if err := json.Unmarshal(b, &file); err != nil {
		return models.SyncFileData{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	major, err := majorVersion(file.Version)
	if err != nil {
		return models.SyncFileData{}, err
	}
	if major == 1 {
		file.FamilyID = ""
		file.FamilyName = ""
	}

	data := bytes.TrimSpace(file.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return models.SyncFileData{}, fmt.Errorf("%w: missing data", ErrMalformed)
	}
	if data[0] != '{' {
		return models.SyncFileData{}, fmt.Errorf("%w: data must be an object", ErrMalformed)
	}

	keys, err := topLevelKeys(data)
	if err != nil {
		return models.SyncFileData{}, err
	}
	if !file.Encrypted && hasAny(keys, envelopeKeys) {
		return models.SyncFileData{}, fmt.Errorf("%w: %w", ErrMalformed, ErrEncryptionMismatch)
	}

	return file, nil
}

// PeekHeader reads only the header fields. An empty or whitespace-only
// input yields a zero Header with no timestamp, which callers treat as a
// brand new file.
func PeekHeader(b []byte) (Header, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return Header{}, nil
	}

	var h Header
	if err := json.Unmarshal(b, &h); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	major, err := majorVersion(h.Version)
	if err != nil {
		return Header{}, err
	}
	if major == 1 {
		h.FamilyID = ""
	}
	if h.ExportedAt != nil && h.ExportedAt.IsZero() {
		h.ExportedAt = nil
	}
	return h, nil
}

// EncodeSnapshot serializes a snapshot as compact JSON. Nil collections
// are written as empty arrays.
func EncodeSnapshot(snapshot models.DomainSnapshot) ([]byte, error) {
	normalized := normalize(snapshot)
	out, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return out, nil
}

// DecodeSnapshot parses a plain snapshot payload. The payload must carry
// at least one snapshot collection and no envelope fields.
func DecodeSnapshot(b []byte) (models.DomainSnapshot, error) {
	keys, err := topLevelKeys(b)
	if err != nil {
		return models.DomainSnapshot{}, err
	}
	if hasAny(keys, envelopeKeys) {
		return models.DomainSnapshot{}, fmt.Errorf("%w: %w", ErrMalformed, ErrEncryptionMismatch)
	}
	if !hasAny(keys, snapshotKeys) {
		return models.DomainSnapshot{}, fmt.Errorf("%w: snapshot has no collections", ErrMalformed)
	}

	var snapshot models.DomainSnapshot
	if err := json.Unmarshal(b, &snapshot); err != nil {
		return models.DomainSnapshot{}, fmt.Errorf("%w: snapshot: %w", ErrMalformed, err)
	}
	return normalize(snapshot), nil
}

// DecodeEnvelope parses the data field of an encrypted file.
func DecodeEnvelope(file models.SyncFileData) (models.EncryptionEnvelope, error) {
	if !file.Encrypted {
		return models.EncryptionEnvelope{}, ErrEncryptionMismatch
	}
	var env models.EncryptionEnvelope
	if err := json.Unmarshal(file.Data, &env); err != nil {
		return models.EncryptionEnvelope{}, fmt.Errorf("%w: envelope: %w", ErrMalformed, err)
	}
	if env.Ciphertext == "" || env.IV == "" || env.Salt == "" {
		return models.EncryptionEnvelope{}, fmt.Errorf("%w: %w", ErrMalformed, ErrEncryptionMismatch)
	}
	return env, nil
}

var (
	envelopeKeys = []string{"salt", "iv", "ciphertext"}
	snapshotKeys = []string{"members", "accounts", "transactions", "assets", "goals", "recurringTransactions"}
)

func topLevelKeys(b []byte) (map[string]json.RawMessage, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return nil, fmt.Errorf("%w: data: %w", ErrMalformed, err)
	}
	return keys, nil
}

func hasAny(keys map[string]json.RawMessage, names []string) bool {
	for _, name := range names {
		if _, ok := keys[name]; ok {
			return true
		}
	}
	return false
}

func majorVersion(version string) (int, error) {
	switch {
	case version == "":
		return 0, fmt.Errorf("%w: missing version", ErrMalformed)
	case version == LegacyVersion || strings.HasPrefix(version, "1."):
		return 1, nil
	case version == Version || strings.HasPrefix(version, "2."):
		return 2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}
}

func normalize(s models.DomainSnapshot) models.DomainSnapshot {
	if s.Members == nil {
		s.Members = []json.RawMessage{}
	}
	if s.Accounts == nil {
		s.Accounts = []json.RawMessage{}
	}
	if s.Transactions == nil {
		s.Transactions = []json.RawMessage{}
	}
	if s.Assets == nil {
		s.Assets = []json.RawMessage{}
	}
	if s.Goals == nil {
		s.Goals = []json.RawMessage{}
	}
	if s.RecurringTransactions == nil {
		s.RecurringTransactions = []json.RawMessage{}
	}
	return s
}
