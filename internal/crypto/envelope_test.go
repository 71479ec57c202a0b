// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/MKhiriev/go-family-sync/models"
)

// fastService keeps property tests quick; production code never goes
// below MinIterations.
func fastService() *envelopeService {
	return &envelopeService{iterations: 1000, minIterations: 1000, random: rand.Reader}
}

func TestNewEnvelopeService_ClampsIterations(t *testing.T) {
	svc := NewEnvelopeService(10).(*envelopeService)
	assert.Equal(t, MinIterations, svc.iterations)

	svc = NewEnvelopeService(250_000).(*envelopeService)
	assert.Equal(t, 250_000, svc.iterations)

	svc = NewEnvelopeService(math.MaxInt32).(*envelopeService)
	assert.Equal(t, MaxIterations, svc.iterations)
}

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	svc := NewEnvelopeService(MinIterations)
	salt := bytes.Repeat([]byte{0xAB}, 16)

	k1 := svc.DeriveKey([]byte("correct horse"), salt, MinIterations)
	k2 := svc.DeriveKey([]byte("correct horse"), salt, MinIterations)

	assert.Len(t, k1, 32)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_DifferentSaltProducesDifferentKey(t *testing.T) {
	svc := NewEnvelopeService(MinIterations)

	k1 := svc.DeriveKey([]byte("same"), bytes.Repeat([]byte{0x01}, 16), MinIterations)
	k2 := svc.DeriveKey([]byte("same"), bytes.Repeat([]byte{0x02}, 16), MinIterations)

	assert.NotEqual(t, k1, k2)
}

func TestEncrypt_EnvelopeShape(t *testing.T) {
	svc := NewEnvelopeService(MinIterations)

	env, err := svc.Encrypt([]byte(`{"members":[]}`), []byte("pw"))
	require.NoError(t, err)

	assert.Equal(t, models.EnvelopeAlgorithm, env.Algorithm)
	assert.Equal(t, models.EnvelopeKDF, env.KDF)
	assert.GreaterOrEqual(t, env.Iterations, MinIterations)

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	require.NoError(t, err)
	assert.Len(t, salt, 16)

	iv, err := base64.StdEncoding.DecodeString(env.IV)
	require.NoError(t, err)
	assert.Len(t, iv, 12)
}

func TestEncrypt_SamePlaintextTwice_DifferentIVAndCiphertext(t *testing.T) {
	svc := NewEnvelopeService(MinIterations)
	plain := []byte(`{"transactions":[{"id":"t1","amount":"12.50"}]}`)

	e1, err := svc.Encrypt(plain, []byte("pw"))
	require.NoError(t, err)
	e2, err := svc.Encrypt(plain, []byte("pw"))
	require.NoError(t, err)

	assert.NotEqual(t, e1.IV, e2.IV)
	assert.NotEqual(t, e1.Salt, e2.Salt)
	assert.NotEqual(t, e1.Ciphertext, e2.Ciphertext)
}

func TestDecrypt_RoundTrip(t *testing.T) {
	svc := NewEnvelopeService(MinIterations)
	plain := []byte(`{"accounts":[{"id":"a1"}]}`)

	env, err := svc.Encrypt(plain, []byte("correct-horse"))
	require.NoError(t, err)

	got, err := svc.Decrypt(env, []byte("correct-horse"))
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestDecrypt_WrongPassword(t *testing.T) {
	svc := NewEnvelopeService(MinIterations)

	env, err := svc.Encrypt([]byte("secret ledger"), []byte("p1"))
	require.NoError(t, err)

	got, err := svc.Decrypt(env, []byte("p2"))
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Nil(t, got)
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	svc := NewEnvelopeService(MinIterations)

	env, err := svc.Encrypt([]byte("secret ledger"), []byte("pw"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	require.NoError(t, err)
	raw[0] ^= 0xFF
	env.Ciphertext = base64.StdEncoding.EncodeToString(raw)

	_, err = svc.Decrypt(env, []byte("pw"))
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestDecrypt_Malformed(t *testing.T) {
	svc := NewEnvelopeService(MinIterations)
	good, err := svc.Encrypt([]byte("x"), []byte("pw"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(e *models.EncryptionEnvelope)
	}{
		{name: "unknown algorithm", mutate: func(e *models.EncryptionEnvelope) { e.Algorithm = "ChaCha20" }},
		{name: "unknown kdf", mutate: func(e *models.EncryptionEnvelope) { e.KDF = "scrypt" }},
		{name: "weak iterations", mutate: func(e *models.EncryptionEnvelope) { e.Iterations = 1000 }},
		{name: "excessive iterations", mutate: func(e *models.EncryptionEnvelope) { e.Iterations = MaxIterations + 1 }},
		{name: "iterations near int32 max", mutate: func(e *models.EncryptionEnvelope) { e.Iterations = math.MaxInt32 }},
		{name: "bad salt encoding", mutate: func(e *models.EncryptionEnvelope) { e.Salt = "%%%" }},
		{name: "short salt", mutate: func(e *models.EncryptionEnvelope) { e.Salt = base64.StdEncoding.EncodeToString([]byte("short")) }},
		{name: "bad iv length", mutate: func(e *models.EncryptionEnvelope) { e.IV = base64.StdEncoding.EncodeToString([]byte("iv")) }},
		{name: "bad ciphertext encoding", mutate: func(e *models.EncryptionEnvelope) { e.Ciphertext = "!!" }},
		{name: "ciphertext shorter than tag", mutate: func(e *models.EncryptionEnvelope) { e.Ciphertext = base64.StdEncoding.EncodeToString([]byte("abc")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := good
			tt.mutate(&env)

			_, err := svc.Decrypt(env, []byte("pw"))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedEnvelope)
			assert.False(t, errors.Is(err, ErrAuthenticationFailed))
		})
	}
}

func TestEncryptDecrypt_EmptyPassword(t *testing.T) {
	svc := NewEnvelopeService(MinIterations)

	_, err := svc.Encrypt([]byte("x"), nil)
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = svc.Decrypt(models.EncryptionEnvelope{}, []byte{})
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestEncrypt_RandomSourceFailure(t *testing.T) {
	svc := fastService()
	svc.random = bytes.NewReader(nil)

	_, err := svc.Encrypt([]byte("x"), []byte("pw"))
	assert.Error(t, err)
}

func TestRoundTrip_Property(t *testing.T) {
	svc := fastService()

	rapid.Check(t, func(t *rapid.T) {
		plain := rapid.SliceOf(rapid.Byte()).Draw(t, "plaintext")
		password := rapid.StringMatching(`[a-zA-Z0-9 !@#]{1,32}`).Draw(t, "password")

		env, err := svc.Encrypt(plain, []byte(password))
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		got, err := svc.Decrypt(env, []byte(password))
		if err != nil {
			t.Fatalf("decrypt: %v", err)
		}
		if !bytes.Equal(plain, got) {
			t.Fatalf("round trip mismatch")
		}
	})
}

func TestWrongPassword_Property(t *testing.T) {
	svc := fastService()

	rapid.Check(t, func(t *rapid.T) {
		plain := rapid.SliceOfN(rapid.Byte(), 1, 256).Draw(t, "plaintext")
		p1 := rapid.StringMatching(`[a-z]{1,16}`).Draw(t, "p1")
		p2 := rapid.StringMatching(`[a-z]{1,16}`).Filter(func(s string) bool { return s != p1 }).Draw(t, "p2")

		env, err := svc.Encrypt(plain, []byte(p1))
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		if _, err = svc.Decrypt(env, []byte(p2)); !errors.Is(err, ErrAuthenticationFailed) {
			t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
		}
	})
}

func TestWipe(t *testing.T) {
	b := []byte("derived key material")
	Wipe(b)
	assert.Equal(t, make([]byte, len(b)), b)

	assert.NotPanics(t, func() { Wipe(nil) })
}
