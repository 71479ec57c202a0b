// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const (
	// EnvelopeAlgorithm is the only supported AEAD.
	EnvelopeAlgorithm = "AES-GCM-256"
	// EnvelopeKDF is the only supported key derivation function.
	EnvelopeKDF = "PBKDF2"
)

// EncryptionEnvelope is the encrypted-at-rest form of a snapshot. Binary
// fields are base64 (standard encoding) so the sync file stays a single
// JSON document. Ciphertext includes the GCM authentication tag.
type EncryptionEnvelope struct {
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
	Algorithm  string `json:"algorithm"`
	KDF        string `json:"kdf"`
	Iterations int    `json:"iterations"`
}
