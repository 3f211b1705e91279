package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testSecrets(t *testing.T) *domain.Secrets {
	t.Helper()
	s, err := domain.NewSecrets(domain.SecretsInput{
		SigningKey:       bytes.Repeat([]byte("k"), 32),
		EncryptionKey:    bytes.Repeat([]byte("e"), 32),
		ObfuscationSalt:  "test-salt",
		PaymentServerKey: "SB-Mid-server-test",
	})
	require.NoError(t, err)
	return s
}

func newTestCore(t *testing.T) (*Core, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Unix(1_700_000_000, 0).UTC()}
	core, err := NewCore(testSecrets(t), Options{
		Issuer:   "trustgate",
		Password: cryptox.HasherConfig{BcryptCost: bcrypt.MinCost},
		Now:      clock.Now,
	})
	require.NoError(t, err)
	return core, clock
}

func TestNewCore(t *testing.T) {
	_, err := NewCore(nil, Options{})
	require.Error(t, err)

	_, err = NewCore(testSecrets(t), Options{Algorithm: "RS256"})
	require.Error(t, err)

	_, err = NewCore(testSecrets(t), Options{Password: cryptox.HasherConfig{Algorithm: "md5"}})
	require.Error(t, err)

	core, _ := newTestCore(t)
	require.NotNil(t, core.Credentials)
	require.NotNil(t, core.Authorizer)
	require.NotNil(t, core.Identifiers)
	require.NotNil(t, core.Params)
	require.NotNil(t, core.Capabilities)
	require.NotNil(t, core.Payments)
	require.NotNil(t, core.Passwords)
}

// Components built from different secrets must not accept each other's
// output.
func TestNewCore_SecretsIsolation(t *testing.T) {
	a, _ := newTestCore(t)

	other, err := domain.NewSecrets(domain.SecretsInput{
		SigningKey:       bytes.Repeat([]byte("z"), 32),
		EncryptionKey:    bytes.Repeat([]byte("y"), 32),
		ObfuscationSalt:  "other-salt",
		PaymentServerKey: "other",
	})
	require.NoError(t, err)
	b, err := NewCore(other, Options{Password: cryptox.HasherConfig{BcryptCost: bcrypt.MinCost}})
	require.NoError(t, err)

	tok, err := a.Credentials.IssueAccess(1, 0)
	require.NoError(t, err)
	_, err = b.Credentials.ValidateAccess(tok.Token)
	require.ErrorIs(t, err, domain.ErrInvalidCredential)

	sealed, err := a.Params.Seal(map[string]any{"k": "v"})
	require.NoError(t, err)
	_, err = b.Params.Open(sealed)
	require.ErrorIs(t, err, domain.ErrDecryptionFailed)
}
