package domain_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/stretchr/testify/require"
)

func validInput() domain.SecretsInput {
	return domain.SecretsInput{
		SigningKey:       bytes.Repeat([]byte("s"), 32),
		EncryptionKey:    bytes.Repeat([]byte("e"), 32),
		ObfuscationSalt:  "salt",
		PaymentServerKey: "server-key",
	}
}

func TestNewSecrets(t *testing.T) {
	s, err := domain.NewSecrets(validInput())
	require.NoError(t, err)
	require.Equal(t, "salt", s.ObfuscationSalt())
	require.Equal(t, "server-key", s.PaymentServerKey())
	require.Len(t, s.CapabilityKey(), 32)
	require.NotEqual(t, s.EncryptionKey(), s.CapabilityKey())
}

func TestNewSecrets_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.SecretsInput)
	}{
		{"short signing key", func(in *domain.SecretsInput) { in.SigningKey = []byte("short") }},
		{"short encryption key", func(in *domain.SecretsInput) { in.EncryptionKey = make([]byte, 16) }},
		{"long encryption key", func(in *domain.SecretsInput) { in.EncryptionKey = make([]byte, 33) }},
		{"no salt", func(in *domain.SecretsInput) { in.ObfuscationSalt = "" }},
		{"no payment key", func(in *domain.SecretsInput) { in.PaymentServerKey = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := domain.NewSecrets(in)
			require.ErrorIs(t, err, domain.ErrInvalidSecrets)
		})
	}
}

func TestSecrets_Immutable(t *testing.T) {
	in := validInput()
	s, err := domain.NewSecrets(in)
	require.NoError(t, err)

	// Mutating the input after construction has no effect.
	in.SigningKey[0] = 'X'
	require.Equal(t, byte('s'), s.SigningKey()[0])

	// Neither does mutating a returned copy.
	k := s.EncryptionKey()
	k[0] = 'X'
	require.Equal(t, byte('e'), s.EncryptionKey()[0])

	c := s.CapabilityKey()
	c[0] ^= 0xff
	require.NotEqual(t, c, s.CapabilityKey())
}

func TestSecrets_CapabilityKeyDeterministic(t *testing.T) {
	a, err := domain.NewSecrets(validInput())
	require.NoError(t, err)
	b, err := domain.NewSecrets(validInput())
	require.NoError(t, err)
	require.Equal(t, a.CapabilityKey(), b.CapabilityKey())

	in := validInput()
	in.EncryptionKey = bytes.Repeat([]byte("f"), 32)
	c, err := domain.NewSecrets(in)
	require.NoError(t, err)
	require.NotEqual(t, a.CapabilityKey(), c.CapabilityKey())
}

func TestSecrets_Redacted(t *testing.T) {
	s, err := domain.NewSecrets(validInput())
	require.NoError(t, err)
	out := fmt.Sprintf("%v %s", s, s)
	require.NotContains(t, out, "sss")
	require.NotContains(t, out, "server-key")
}
