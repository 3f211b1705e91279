package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

var (
	ErrKeySize          = errors.New("cryptox: key must be 32 bytes")
	ErrCiphertextShort  = errors.New("cryptox: ciphertext too short")
	ErrDecryptionFailed = errors.New("cryptox: decryption failed")
)

// AEAD seals and opens byte payloads with AES-256-GCM under a fixed key.
// The sealed format is: [12-byte nonce][encrypted data][16-byte auth tag].
// The nonce is drawn from crypto/rand on every call.
type AEAD struct {
	gcm cipher.AEAD
}

// NewAEAD creates an AES-256-GCM codec. key must be exactly KeySize bytes.
func NewAEAD(key []byte) (*AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AEAD{gcm: gcm}, nil
}

// Overhead is the number of bytes Seal adds to the plaintext.
func (a *AEAD) Overhead() int { return a.gcm.NonceSize() + a.gcm.Overhead() }

// Seal encrypts and authenticates plaintext with no associated data.
func (a *AEAD) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, a.gcm.NonceSize(), a.gcm.NonceSize()+len(plaintext)+a.gcm.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// gcm.Seal appends the ciphertext and auth tag to nonce
	return a.gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open verifies and decrypts data produced by Seal.
func (a *AEAD) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < a.Overhead() {
		return nil, ErrCiphertextShort
	}

	nonce, ciphertext := sealed[:a.gcm.NonceSize()], sealed[a.gcm.NonceSize():]

	plaintext, err := a.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// DeriveKey stretches arbitrary key material into a 32-byte AES key with
// SHA-256. Used for operator-supplied master keys of unknown length.
func DeriveKey(material []byte) []byte {
	sum := sha256.Sum256(material)
	return sum[:]
}
