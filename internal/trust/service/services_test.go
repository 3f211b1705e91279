package service

import (
	"math"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/hashidx"
	"github.com/aussiebroadwan/trustgate/pkg/paysig"
	"github.com/aussiebroadwan/trustgate/pkg/rolex"
	"github.com/aussiebroadwan/trustgate/pkg/signx"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer(t *testing.T) {
	core, _ := newTestCore(t)
	a := core.Authorizer

	require.NoError(t, a.Authorize(rolex.SuperAdmin, []rolex.Role{rolex.Admin}, rolex.Hierarchical))

	err := a.Authorize(rolex.SuperAdmin, []rolex.Role{rolex.Admin}, rolex.Exact)
	require.ErrorIs(t, err, domain.ErrInsufficientRole)
	require.ErrorIs(t, err, rolex.ErrInsufficientRole)

	require.NoError(t, a.Authorize(rolex.SuperAdmin, []rolex.Role{rolex.Admin, rolex.SuperAdmin}, rolex.Exact))
	require.ErrorIs(t, a.Authorize(rolex.Admin, nil, rolex.Hierarchical), domain.ErrInsufficientRole)

	owner := domain.Identity{SubjectID: 5, Role: rolex.User}
	require.NoError(t, a.RequireOwnerOrAdmin(owner, 5))
	require.ErrorIs(t, a.RequireOwnerOrAdmin(owner, 6), domain.ErrInsufficientRole)
	require.NoError(t, a.RequireOwnerOrAdmin(domain.Identity{SubjectID: 1, Role: rolex.Admin}, 6))

	require.Equal(t, 2, a.Levels()["super_admin"])
}

func TestIdentifiers(t *testing.T) {
	core, _ := newTestCore(t)
	ids := core.Identifiers

	for _, n := range []int64{0, 1, 42, math.MaxInt64} {
		s, err := ids.Encode(n)
		require.NoError(t, err)
		got, err := ids.Decode(s)
		require.NoError(t, err)
		require.Equal(t, n, got)
	}

	_, err := ids.Encode(-1)
	require.ErrorIs(t, err, hashidx.ErrOutOfRange)

	_, err = ids.Decode("!!")
	require.ErrorIs(t, err, domain.ErrMalformedIdentifier)
	require.ErrorIs(t, err, hashidx.ErrMalformed)

	t.Run("pairs", func(t *testing.T) {
		s, err := ids.EncodeMany(7, 1001)
		require.NoError(t, err)

		got, err := ids.DecodeN(s, 2)
		require.NoError(t, err)
		require.Equal(t, []int64{7, 1001}, got)

		_, err = ids.Decode(s)
		require.ErrorIs(t, err, domain.ErrMalformedIdentifier)

		single, err := ids.Encode(7)
		require.NoError(t, err)
		_, err = ids.DecodeN(single, 2)
		require.ErrorIs(t, err, domain.ErrMalformedIdentifier)

		_, err = ids.EncodeMany(1, -2)
		require.ErrorIs(t, err, hashidx.ErrOutOfRange)
	})
}

func TestParams(t *testing.T) {
	core, _ := newTestCore(t)

	token, err := core.Params.Seal(map[string]any{"rfq_id": "r-1"})
	require.NoError(t, err)

	got, err := core.Params.Open(token)
	require.NoError(t, err)
	require.Equal(t, "r-1", got["rfq_id"])

	_, err = core.Params.Open(token[:len(token)-4])
	require.ErrorIs(t, err, domain.ErrDecryptionFailed)
}

func TestCapabilities(t *testing.T) {
	core, clock := newTestCore(t)
	caps := core.Capabilities

	c, err := caps.Issue(DocumentKind, "abc", time.Second, nil)
	require.NoError(t, err)
	require.NoError(t, caps.Verify(DocumentKind, "abc", c.Expires, c.Signature, nil))

	err = caps.Verify(DocumentKind, "xyz", c.Expires, c.Signature, nil)
	require.ErrorIs(t, err, domain.ErrCapabilityInvalid)
	require.ErrorIs(t, err, signx.ErrInvalidSignature)

	clock.Advance(2 * time.Second)
	err = caps.Verify(DocumentKind, "abc", c.Expires, c.Signature, nil)
	require.ErrorIs(t, err, domain.ErrCapabilityInvalid)
	require.ErrorIs(t, err, signx.ErrExpired)
	require.Equal(t, "invalid or expired capability", err.Error())
}

func TestCapabilities_DocumentDownloadPath(t *testing.T) {
	core, clock := newTestCore(t)

	path, c, err := core.Capabilities.DocumentDownloadPath("Xy12ab90", 0)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, DocumentDownloadPrefix+"Xy12ab90?"))
	require.Equal(t, clock.Now().Add(signx.DefaultTTL).Unix(), c.Expires)

	u, err := url.Parse(path)
	require.NoError(t, err)
	require.NoError(t, core.Capabilities.VerifyQuery(DocumentKind, "Xy12ab90", u.Query(), nil))
	require.ErrorIs(t, core.Capabilities.VerifyQuery(DocumentKind, "other", u.Query(), nil), domain.ErrCapabilityInvalid)
}

func TestPayments(t *testing.T) {
	core, _ := newTestCore(t)

	signer, err := paysig.New("SB-Mid-server-test")
	require.NoError(t, err)

	n := paysig.Notification{
		OrderID:           "SUB-1",
		StatusCode:        "200",
		GrossAmount:       "50000.00",
		TransactionStatus: "capture",
		FraudStatus:       "accept",
	}
	n.SignatureKey = signer.Sign(n.OrderID, n.StatusCode, n.GrossAmount)

	status, err := core.Payments.VerifyNotification(n)
	require.NoError(t, err)
	require.Equal(t, paysig.StatusSuccess, status)

	n.GrossAmount = "1.00"
	_, err = core.Payments.VerifyNotification(n)
	require.ErrorIs(t, err, domain.ErrExternalSignatureMismatch)
}

func TestPasswords(t *testing.T) {
	core, _ := newTestCore(t)

	hash, err := core.Passwords.Hash("correct horse")
	require.NoError(t, err)

	rehash, err := core.Passwords.Verify("correct horse", hash)
	require.NoError(t, err)
	require.False(t, rehash)

	_, err = core.Passwords.Verify("wrong", hash)
	require.ErrorIs(t, err, domain.ErrInvalidCredential)

	_, err = core.Passwords.Verify("correct horse", "not-a-hash")
	require.ErrorIs(t, err, domain.ErrInvalidCredential)
}
