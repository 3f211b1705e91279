package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T, alg string) *Hasher {
	t.Helper()
	h, err := NewHasher(HasherConfig{Algorithm: alg, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	return h
}

func TestNewHasher(t *testing.T) {
	h, err := NewHasher(HasherConfig{})
	require.NoError(t, err)
	require.Equal(t, AlgorithmBcrypt, h.Algorithm())
	require.Equal(t, bcrypt.DefaultCost+2, h.cost)

	h, err = NewHasher(HasherConfig{Algorithm: "ARGON2ID"})
	require.NoError(t, err)
	require.Equal(t, AlgorithmArgon2id, h.Algorithm())

	_, err = NewHasher(HasherConfig{Algorithm: "md5"})
	require.ErrorIs(t, err, ErrUnknownAlgorithm)

	_, err = NewHasher(HasherConfig{BcryptCost: 99})
	require.Error(t, err)
}

func TestHashAndVerify(t *testing.T) {
	passwords := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, alg := range []string{AlgorithmBcrypt, AlgorithmArgon2id} {
		h := newTestHasher(t, alg)
		for _, tt := range passwords {
			t.Run(alg+"/"+tt.name, func(t *testing.T) {
				hash, err := h.Hash(tt.password)
				require.NoError(t, err)
				require.NotEmpty(t, hash)

				require.NoError(t, h.Verify(tt.password, hash))
				require.True(t, h.Matches(tt.password, hash))

				require.ErrorIs(t, h.Verify(tt.password+"x", hash), ErrPasswordMismatch)
				require.False(t, h.Matches(tt.password+"x", hash))
			})
		}
	}
}

func TestHash_Formats(t *testing.T) {
	hash, err := newTestHasher(t, AlgorithmBcrypt).Hash("pw")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2a$"), hash)

	hash, err = newTestHasher(t, AlgorithmArgon2id).Hash("pw")
	require.NoError(t, err)

	// Verify PHC format
	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6, "PHC hash should have 6 parts")
	require.Equal(t, "argon2id", parts[1])
	require.Equal(t, "v=19", parts[2])
	require.Equal(t, "m=19456,t=2,p=1", parts[3])
}

func TestHash_UniqueSalts(t *testing.T) {
	for _, alg := range []string{AlgorithmBcrypt, AlgorithmArgon2id} {
		h := newTestHasher(t, alg)
		h1, err := h.Hash("samepassword")
		require.NoError(t, err)
		h2, err := h.Hash("samepassword")
		require.NoError(t, err)
		require.NotEqual(t, h1, h2, "hashes should differ due to unique salts")
	}
}

func TestHash_BcryptRejectsLongInput(t *testing.T) {
	h := newTestHasher(t, AlgorithmBcrypt)

	_, err := h.Hash(strings.Repeat("a", 72))
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)

	// The pepper counts towards the limit.
	peppered, err := NewHasher(HasherConfig{BcryptCost: bcrypt.MinCost, Pepper: "0123456789"})
	require.NoError(t, err)
	_, err = peppered.Hash(strings.Repeat("a", 63))
	require.ErrorIs(t, err, ErrPasswordTooLong)

	// argon2id has no such ceiling.
	_, err = newTestHasher(t, AlgorithmArgon2id).Hash(strings.Repeat("a", 1000))
	require.NoError(t, err)
}

func TestVerify_CrossAlgorithm(t *testing.T) {
	bc := newTestHasher(t, AlgorithmBcrypt)
	ar := newTestHasher(t, AlgorithmArgon2id)

	bHash, err := bc.Hash("pw")
	require.NoError(t, err)
	aHash, err := ar.Hash("pw")
	require.NoError(t, err)

	// Verification follows the hash, not the configured algorithm.
	require.NoError(t, ar.Verify("pw", bHash))
	require.NoError(t, bc.Verify("pw", aHash))
}

func TestVerify_Pepper(t *testing.T) {
	a, err := NewHasher(HasherConfig{BcryptCost: bcrypt.MinCost, Pepper: "pepper-a"})
	require.NoError(t, err)
	b, err := NewHasher(HasherConfig{BcryptCost: bcrypt.MinCost, Pepper: "pepper-b"})
	require.NoError(t, err)

	hash, err := a.Hash("pw")
	require.NoError(t, err)
	require.NoError(t, a.Verify("pw", hash))
	require.ErrorIs(t, b.Verify("pw", hash), ErrPasswordMismatch)
}

func TestVerify_InvalidHashFormat(t *testing.T) {
	h := newTestHasher(t, AlgorithmBcrypt)

	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"unknown algorithm", "$md5$abc"},
		{"truncated bcrypt", "$2a$04$short"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify("test-password", tt.invalidHash)
			require.ErrorIs(t, err, ErrInvalidHash)
			require.False(t, h.Matches("test-password", tt.invalidHash))
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	bc := newTestHasher(t, AlgorithmBcrypt)
	ar := newTestHasher(t, AlgorithmArgon2id)

	bHash, err := bc.Hash("pw")
	require.NoError(t, err)
	aHash, err := ar.Hash("pw")
	require.NoError(t, err)

	require.False(t, bc.NeedsRehash(bHash))
	require.True(t, bc.NeedsRehash(aHash))
	require.False(t, ar.NeedsRehash(aHash))
	require.True(t, ar.NeedsRehash(bHash))
	require.True(t, bc.NeedsRehash("garbage"))

	stronger, err := NewHasher(HasherConfig{BcryptCost: bcrypt.MinCost + 1})
	require.NoError(t, err)
	require.True(t, stronger.NeedsRehash(bHash))
}

func TestLoadOrGeneratePepper(t *testing.T) {
	pepper, err := LoadOrGeneratePepper("")
	require.NoError(t, err)
	require.Empty(t, pepper)

	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	require.LessOrEqual(t, len(first), 16)

	second, err := LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second, "pepper should be stable once written")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
