// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "github.com/MKhiriev/go-family-sync/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/envelope_service_mock.go -package=mock

// EnvelopeService turns a plaintext snapshot into an authenticated,
// tamper-evident envelope and back. The user's password is the only key
// source: nothing is stored besides the salt and IV in the envelope.
//
// Scheme:
//
//	Salt, IV  = 16 and 12 random bytes, fresh for every Encrypt call
//	Key       = PBKDF2-HMAC-SHA256(password, Salt, Iterations, 32)
//	Envelope  = AES-256-GCM(Key, IV, plaintext)  (tag appended)
type EnvelopeService interface {
	// DeriveKey runs PBKDF2-HMAC-SHA256 and returns a 256-bit key.
	// The caller owns the result and should wipe it after use.
	DeriveKey(password, salt []byte, iterations int) []byte

	// Encrypt seals plaintext under a key derived from password.
	// Returns an error only if the random source fails.
	Encrypt(plaintext, password []byte) (models.EncryptionEnvelope, error)

	// Decrypt re-derives the key from the envelope's salt and opens the
	// ciphertext. A wrong password or a modified ciphertext yields
	// ErrAuthenticationFailed; a structurally invalid envelope yields
	// ErrMalformedEnvelope.
	Decrypt(envelope models.EncryptionEnvelope, password []byte) ([]byte, error)
}
