package domain

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/hkdf"
)

const (
	// MinSigningKeySize matches the HMAC credential signer's lower bound.
	MinSigningKeySize = 32
	// EncryptionKeySize is the AES-256 key length.
	EncryptionKeySize = 32

	capabilityKeyInfo = "trustgate/capability"
)

var ErrInvalidSecrets = errors.New("domain: invalid secrets")

// Secrets is the process-wide key material. It is built once at startup
// and handed to each component's constructor; every accessor returns a
// copy so no caller can mutate it.
type Secrets struct {
	signingKey       []byte
	encryptionKey    []byte
	capabilityKey    []byte
	obfuscationSalt  string
	paymentServerKey string
}

// SecretsInput is the raw material for NewSecrets.
type SecretsInput struct {
	SigningKey       []byte
	EncryptionKey    []byte
	ObfuscationSalt  string
	PaymentServerKey string
}

// NewSecrets validates in and derives the capability subkey from the
// encryption key with HKDF-SHA256.
func NewSecrets(in SecretsInput) (*Secrets, error) {
	var errs []error
	if len(in.SigningKey) < MinSigningKeySize {
		errs = append(errs, fmt.Errorf("signing key must be at least %d bytes", MinSigningKeySize))
	}
	if len(in.EncryptionKey) != EncryptionKeySize {
		errs = append(errs, fmt.Errorf("encryption key must be exactly %d bytes", EncryptionKeySize))
	}
	if in.ObfuscationSalt == "" {
		errs = append(errs, errors.New("obfuscation salt is required"))
	}
	if in.PaymentServerKey == "" {
		errs = append(errs, errors.New("payment server key is required"))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSecrets, errors.Join(errs...))
	}

	capKey := make([]byte, 32)
	kdf := hkdf.New(sha256.New, in.EncryptionKey, nil, []byte(capabilityKeyInfo))
	if _, err := io.ReadFull(kdf, capKey); err != nil {
		return nil, fmt.Errorf("domain: derive capability key: %w", err)
	}

	return &Secrets{
		signingKey:       clone(in.SigningKey),
		encryptionKey:    clone(in.EncryptionKey),
		capabilityKey:    capKey,
		obfuscationSalt:  in.ObfuscationSalt,
		paymentServerKey: in.PaymentServerKey,
	}, nil
}

func (s *Secrets) SigningKey() []byte       { return clone(s.signingKey) }
func (s *Secrets) EncryptionKey() []byte    { return clone(s.encryptionKey) }
func (s *Secrets) ObfuscationSalt() string  { return s.obfuscationSalt }
func (s *Secrets) PaymentServerKey() string { return s.paymentServerKey }

// CapabilityKey is the HMAC key for signed capabilities. It is derived
// from the encryption key so the two never share raw bytes.
func (s *Secrets) CapabilityKey() []byte { return clone(s.capabilityKey) }

// String keeps key material out of fmt output.
func (s *Secrets) String() string { return "Secrets{redacted}" }

// LogValue keeps key material out of slog output.
func (s *Secrets) LogValue() slog.Value { return slog.StringValue("redacted") }

func clone(b []byte) []byte { return append([]byte(nil), b...) }
