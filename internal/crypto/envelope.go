// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/MKhiriev/go-family-sync/models"
)

const (
	// MinIterations is the lowest PBKDF2 iteration count accepted on
	// encrypt or decrypt.
	MinIterations = 100_000
	// MaxIterations bounds the count read from a sync file, so a crafted
	// envelope cannot keep key derivation busy for minutes.
	MaxIterations = 10_000_000

	saltSize = 16
	ivSize   = 12
	keySize  = 32 // AES-256
)

// envelopeService is the private implementation of [EnvelopeService].
type envelopeService struct {
	iterations    int
	minIterations int
	random        io.Reader
}

// NewEnvelopeService constructs an [EnvelopeService] that derives keys with
// the given PBKDF2 iteration count, clamped between [MinIterations] and
// [MaxIterations].
func NewEnvelopeService(iterations int) EnvelopeService {
	iterations = max(MinIterations, min(iterations, MaxIterations))
	return &envelopeService{
		iterations:    iterations,
		minIterations: MinIterations,
		random:        rand.Reader,
	}
}

// DeriveKey implements [EnvelopeService].
func (e *envelopeService) DeriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, keySize, sha256.New)
}

// Encrypt implements [EnvelopeService]. Salt and IV are read from the OS
// CSPRNG on every call, so encrypting the same plaintext twice never
// produces the same envelope.
func (e *envelopeService) Encrypt(plaintext, password []byte) (models.EncryptionEnvelope, error) {
	if len(password) == 0 {
		return models.EncryptionEnvelope{}, ErrEmptyPassword
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(e.random, salt); err != nil {
		return models.EncryptionEnvelope{}, fmt.Errorf("generate salt: %w", err)
	}
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(e.random, iv); err != nil {
		return models.EncryptionEnvelope{}, fmt.Errorf("generate iv: %w", err)
	}

	key := e.DeriveKey(password, salt, e.iterations)
	defer Wipe(key)

	gcm, err := newGCM(key)
	if err != nil {
		return models.EncryptionEnvelope{}, err
	}

	ciphertext := gcm.Seal(nil, iv, plaintext, nil)

	return models.EncryptionEnvelope{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		IV:         base64.StdEncoding.EncodeToString(iv),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Algorithm:  models.EnvelopeAlgorithm,
		KDF:        models.EnvelopeKDF,
		Iterations: e.iterations,
	}, nil
}

// Decrypt implements [EnvelopeService].
func (e *envelopeService) Decrypt(envelope models.EncryptionEnvelope, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	if envelope.Algorithm != models.EnvelopeAlgorithm {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedEnvelope, envelope.Algorithm)
	}
	if envelope.KDF != models.EnvelopeKDF {
		return nil, fmt.Errorf("%w: unsupported kdf %q", ErrMalformedEnvelope, envelope.KDF)
	}
	if envelope.Iterations < e.minIterations {
		return nil, fmt.Errorf("%w: %d iterations is below the minimum", ErrMalformedEnvelope, envelope.Iterations)
	}
	if envelope.Iterations > MaxIterations {
		return nil, fmt.Errorf("%w: %d iterations is above the maximum", ErrMalformedEnvelope, envelope.Iterations)
	}

	salt, err := base64.StdEncoding.DecodeString(envelope.Salt)
	if err != nil || len(salt) < saltSize {
		return nil, fmt.Errorf("%w: bad salt", ErrMalformedEnvelope)
	}
	iv, err := base64.StdEncoding.DecodeString(envelope.IV)
	if err != nil || len(iv) != ivSize {
		return nil, fmt.Errorf("%w: bad iv", ErrMalformedEnvelope)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: bad ciphertext encoding", ErrMalformedEnvelope)
	}

	key := e.DeriveKey(password, salt, envelope.Iterations)
	defer Wipe(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrMalformedEnvelope)
	}

	// A tag mismatch almost always means a wrong password.
	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
