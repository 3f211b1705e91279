// Package sealx encrypts small JSON parameter payloads into opaque,
// URL-safe tokens and back.
//
// Tokens are base64url(nonce || ciphertext || tag) under AES-256-GCM. Any
// tampering, truncation or key mismatch surfaces as ErrDecryptionFailed.
package sealx

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/trustgate/pkg/cryptox"
)

var (
	ErrDecryptionFailed = errors.New("sealx: decryption failed")
	ErrNilPayload       = errors.New("sealx: payload is nil")
)

// Decoding is strict: non-zero trailing bits in the last symbol are
// rejected so each ciphertext has exactly one padded and one unpadded form.
var (
	encoding    = base64.URLEncoding.Strict()
	rawEncoding = base64.RawURLEncoding.Strict()
)

// Codec is safe for concurrent use.
type Codec struct {
	aead *cryptox.AEAD
}

// New returns a Codec keyed with a 32-byte AES key.
func New(key []byte) (*Codec, error) {
	aead, err := cryptox.NewAEAD(key)
	if err != nil {
		return nil, err
	}
	return &Codec{aead: aead}, nil
}

// Encrypt serializes payload as JSON and seals it. Map keys are emitted in
// sorted order.
func (c *Codec) Encrypt(payload map[string]any) (string, error) {
	if payload == nil {
		return "", ErrNilPayload
	}
	return c.EncryptValue(payload)
}

// EncryptValue seals any JSON-serializable value.
func (c *Codec) EncryptValue(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("sealx: marshal payload: %w", err)
	}

	sealed, err := c.aead.Seal(plaintext)
	if err != nil {
		return "", err
	}
	return encoding.EncodeToString(sealed), nil
}

// Decrypt opens token and returns the JSON object inside. Numbers decode as
// float64, as with encoding/json.
func (c *Codec) Decrypt(token string) (map[string]any, error) {
	var out map[string]any
	if err := c.DecryptInto(token, &out); err != nil {
		return nil, err
	}
	if out == nil {
		// "null" is valid JSON but not an object
		return nil, fmt.Errorf("%w: payload is not an object", ErrDecryptionFailed)
	}
	return out, nil
}

// DecryptInto opens token and unmarshals the plaintext into v.
func (c *Codec) DecryptInto(token string, v any) error {
	plaintext, err := c.open(token)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return nil
}

func (c *Codec) open(token string) ([]byte, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrDecryptionFailed)
	}

	sealed, err := encoding.DecodeString(token)
	if err != nil {
		// Tolerate clients that strip padding.
		sealed, err = rawEncoding.DecodeString(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
		}
	}

	plaintext, err := c.aead.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}
