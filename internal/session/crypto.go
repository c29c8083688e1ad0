// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/haven-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// sealedPrefix marks a stored value as sealed (format: ENC:base64(nonce|ciphertext|tag))
const sealedPrefix = "ENC:"

// nonceSize is the size of the nonce/IV for AES-GCM (12 bytes / 96 bits)
const nonceSize = 12

// keySize is the size of the AES-256 key (32 bytes / 256 bits)
const keySize = 32

// saltSize is the size of the salt for key derivation (32 bytes)
const saltSize = 32

// pbkdf2Iterations is the number of iterations for PBKDF2-SHA-256 key
// derivation. Follows current OWASP guidance.
const pbkdf2Iterations = 600000

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrInvalidSealedValue = errors.New("invalid sealed value format")
	ErrUnsealFailed       = errors.New("unseal failed: authentication tag mismatch")
)

// =============================================================================
// SEALER
// =============================================================================

// Sealer encrypts and decrypts the token for storage at rest. The
// secret behind the key lives in a 0600 file next to the database.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer loads the secret file at keyPath, creating it with fresh
// random material on first run, and derives the sealing key from it.
func NewSealer(keyPath string) (*Sealer, error) {
	secret, salt, err := loadOrCreateSecret(keyPath)
	if err != nil {
		return nil, err
	}

	key := pbkdf2.Key(secret, salt, pbkdf2Iterations, keySize, sha256.New)
	zeroBytes(secret)

	block, err := aes.NewCipher(key)
	zeroBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create AEAD: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// Seal encrypts a plaintext value for storage.
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := s.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(append(nonce, ciphertext...)), nil
}

// Open decrypts a sealed value.
func (s *Sealer) Open(sealed string) (string, error) {
	if !strings.HasPrefix(sealed, sealedPrefix) {
		return "", ErrInvalidSealedValue
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, sealedPrefix))
	if err != nil {
		return "", ErrInvalidSealedValue
	}
	if len(raw) < nonceSize {
		return "", ErrInvalidSealedValue
	}

	plaintext, err := s.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", ErrUnsealFailed
	}
	return string(plaintext), nil
}

// =============================================================================
// SECRET FILE
// =============================================================================

// loadOrCreateSecret reads the secret file, generating one if absent.
// The file holds base64(salt|secret) and is written atomically with
// 0600 permissions.
func loadOrCreateSecret(keyPath string) (secret, salt []byte, err error) {
	data, err := os.ReadFile(keyPath)
	if err == nil {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if err != nil || len(raw) != saltSize+keySize {
			return nil, nil, fmt.Errorf("corrupt secret file at %s", keyPath)
		}
		return raw[saltSize:], raw[:saltSize], nil
	}
	if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("failed to read secret file: %w", err)
	}

	raw := make([]byte, saltSize+keySize)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, nil, fmt.Errorf("failed to generate secret: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(raw)
	if err := util.AtomicWriteFile(keyPath, []byte(encoded), 0600); err != nil {
		return nil, nil, fmt.Errorf("failed to write secret file: %w", err)
	}

	return raw[saltSize:], raw[:saltSize], nil
}

// zeroBytes zeros sensitive byte slices to prevent memory disclosure.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
