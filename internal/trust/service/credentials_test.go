package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/jwtx"
	"github.com/aussiebroadwan/trustgate/pkg/rolex"
	"github.com/stretchr/testify/require"
)

func TestCredentials_EndToEnd(t *testing.T) {
	core, clock := newTestCore(t)
	creds := core.Credentials

	tok, err := creds.IssueAccess(42, rolex.Admin, WithTTL(60*time.Second))
	require.NoError(t, err)
	require.Equal(t, clock.Now().Add(60*time.Second), tok.ExpiresAt)

	id, err := creds.ValidateAccess(tok.Token)
	require.NoError(t, err)
	require.Equal(t, int64(42), id.SubjectID)
	require.Equal(t, rolex.Admin, id.Role)
	require.Equal(t, domain.TokenAccess, id.Type)
	require.Equal(t, tok.TokenID, id.TokenID)

	clock.Advance(59 * time.Second)
	_, err = creds.ValidateAccess(tok.Token)
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	_, err = creds.ValidateAccess(tok.Token)
	require.ErrorIs(t, err, domain.ErrInvalidCredential)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestCredentials_DefaultTTLs(t *testing.T) {
	core, clock := newTestCore(t)

	pair, err := core.Credentials.IssuePair(7, rolex.User)
	require.NoError(t, err)
	require.Equal(t, clock.Now().Add(60*time.Minute), pair.Access.ExpiresAt)
	require.Equal(t, clock.Now().Add(7*24*time.Hour), pair.Refresh.ExpiresAt)
}

func TestCredentials_TypeConfusion(t *testing.T) {
	core, _ := newTestCore(t)
	creds := core.Credentials

	pair, err := creds.IssuePair(42, rolex.SuperAdmin)
	require.NoError(t, err)

	_, err = creds.ValidateAccess(pair.Refresh.Token)
	require.ErrorIs(t, err, domain.ErrInvalidCredential)
	require.ErrorIs(t, err, jwtx.ErrWrongType)

	_, err = creds.ValidateRefresh(pair.Access.Token)
	require.ErrorIs(t, err, domain.ErrInvalidCredential)

	id, err := creds.ValidateRefresh(pair.Refresh.Token)
	require.NoError(t, err)
	require.Equal(t, domain.TokenRefresh, id.Type)
	require.Equal(t, int64(42), id.SubjectID)
}

// Every failure reads the same to the caller.
func TestCredentials_FailuresIndistinguishable(t *testing.T) {
	core, clock := newTestCore(t)
	creds := core.Credentials

	expired, err := creds.IssueAccess(1, rolex.User, WithTTL(time.Second))
	require.NoError(t, err)
	refresh, err := creds.IssueRefresh(1)
	require.NoError(t, err)
	clock.Advance(2 * time.Second)

	for _, token := range []string{"", "garbage", expired.Token, refresh.Token, expired.Token + "x"} {
		_, err := creds.ValidateAccess(token)
		require.ErrorIs(t, err, domain.ErrInvalidCredential)
		require.Equal(t, "invalid credential", err.Error())
	}
}

func TestCredentials_ExtraClaims(t *testing.T) {
	core, _ := newTestCore(t)
	creds := core.Credentials

	tok, err := creds.IssueAccess(5, rolex.User, WithExtraClaims(map[string]any{"company": "acme"}))
	require.NoError(t, err)

	id, err := creds.ValidateAccess(tok.Token)
	require.NoError(t, err)
	require.Equal(t, "acme", id.Extra["company"])

	_, err = creds.IssueAccess(5, rolex.User, WithExtraClaims(map[string]any{"role": "super_admin"}))
	require.ErrorIs(t, err, jwtx.ErrReservedClaim)
}

func TestCredentials_IssueValidation(t *testing.T) {
	core, _ := newTestCore(t)
	creds := core.Credentials

	_, err := creds.IssueAccess(-1, rolex.User)
	require.ErrorIs(t, err, ErrInvalidSubject)

	_, err = creds.IssueAccess(1, rolex.Role(9))
	require.ErrorIs(t, err, rolex.ErrUnknownRole)

	_, err = creds.IssueAccess(1, rolex.User, WithTTL(-time.Second))
	require.ErrorIs(t, err, ErrInvalidTTL)

	_, err = creds.IssueRefresh(-5)
	require.ErrorIs(t, err, ErrInvalidSubject)
}

func TestCredentials_UnknownRoleClaim(t *testing.T) {
	core, clock := newTestCore(t)
	creds := core.Credentials

	claims := jwtx.NewAccessClaims("1", "owner", time.Minute, "trustgate", clock.Now())
	token, err := creds.Tokens.Sign(claims)
	require.NoError(t, err)

	_, err = creds.ValidateAccess(token)
	require.ErrorIs(t, err, domain.ErrInvalidCredential)
	require.ErrorIs(t, err, rolex.ErrUnknownRole)
}

func TestCredentials_NonNumericSubject(t *testing.T) {
	core, clock := newTestCore(t)
	creds := core.Credentials

	token, err := creds.Tokens.Sign(jwtx.NewAccessClaims("alice", "user", time.Minute, "trustgate", clock.Now()))
	require.NoError(t, err)

	_, err = creds.ValidateAccess(token)
	require.ErrorIs(t, err, domain.ErrInvalidCredential)
}

func TestCredentials_Refresh(t *testing.T) {
	core, clock := newTestCore(t)
	creds := core.Credentials

	pair, err := creds.IssuePair(42, rolex.Admin)
	require.NoError(t, err)

	// Demoted since login.
	directory := RoleResolverFunc(func(_ context.Context, sub int64) (rolex.Role, error) {
		if sub == 42 {
			return rolex.User, nil
		}
		return 0, ErrUnknownSubject
	})

	clock.Advance(2 * time.Hour)
	next, err := creds.Refresh(context.Background(), pair.Refresh.Token, directory)
	require.NoError(t, err)

	id, err := creds.ValidateAccess(next.Access.Token)
	require.NoError(t, err)
	require.Equal(t, rolex.User, id.Role)
	require.NotEqual(t, pair.Refresh.TokenID, next.Refresh.TokenID)

	t.Run("access token rejected", func(t *testing.T) {
		_, err := creds.Refresh(context.Background(), next.Access.Token, directory)
		require.ErrorIs(t, err, domain.ErrInvalidCredential)
	})

	t.Run("unknown subject", func(t *testing.T) {
		orphan, err := creds.IssueRefresh(99)
		require.NoError(t, err)
		_, err = creds.Refresh(context.Background(), orphan.Token, directory)
		require.ErrorIs(t, err, domain.ErrInvalidCredential)
	})

	t.Run("directory failure is not a credential error", func(t *testing.T) {
		down := RoleResolverFunc(func(context.Context, int64) (rolex.Role, error) {
			return 0, errors.New("connection refused")
		})
		_, err := creds.Refresh(context.Background(), next.Refresh.Token, down)
		require.Error(t, err)
		require.NotErrorIs(t, err, domain.ErrInvalidCredential)
	})

	t.Run("expired refresh", func(t *testing.T) {
		clock.Advance(8 * 24 * time.Hour)
		_, err := creds.Refresh(context.Background(), next.Refresh.Token, directory)
		require.ErrorIs(t, err, domain.ErrInvalidCredential)
	})
}
