package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/jwtx"
	"github.com/aussiebroadwan/trustgate/pkg/rolex"
	"github.com/aussiebroadwan/trustgate/pkg/slogx"
)

var (
	ErrInvalidSubject = errors.New("service: subject id must not be negative")
	ErrInvalidTTL     = errors.New("service: ttl must be positive")

	// ErrUnknownSubject is returned by a RoleResolver when the subject no
	// longer exists.
	ErrUnknownSubject = errors.New("service: unknown subject")
)

// TokenCodec signs and verifies credential claims.
type TokenCodec interface {
	Sign(jwtx.Claims) (string, error)
	Verify(token string) (*jwtx.Claims, error)
}

// RoleResolver looks up a subject's current role in the user directory.
type RoleResolver interface {
	ResolveRole(ctx context.Context, subjectID int64) (rolex.Role, error)
}

// RoleResolverFunc adapts a function to RoleResolver.
type RoleResolverFunc func(ctx context.Context, subjectID int64) (rolex.Role, error)

func (f RoleResolverFunc) ResolveRole(ctx context.Context, subjectID int64) (rolex.Role, error) {
	return f(ctx, subjectID)
}

// CredentialService issues and validates access and refresh credentials.
type CredentialService struct {
	Tokens     TokenCodec
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

type accessOptions struct {
	ttl   time.Duration
	extra map[string]any
}

// AccessOption customizes a single IssueAccess call.
type AccessOption func(*accessOptions)

// WithTTL overrides the configured access lifetime.
func WithTTL(d time.Duration) AccessOption {
	return func(o *accessOptions) { o.ttl = d }
}

// WithExtraClaims adds claims next to the standard ones. Reserved names
// are rejected at issue time.
func WithExtraClaims(extra map[string]any) AccessOption {
	return func(o *accessOptions) {
		if o.extra == nil {
			o.extra = make(map[string]any, len(extra))
		}
		maps.Copy(o.extra, extra)
	}
}

func (s *CredentialService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CredentialService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *CredentialService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// IssueAccess signs an access credential for subjectID carrying role.
func (s *CredentialService) IssueAccess(subjectID int64, role rolex.Role, opts ...AccessOption) (domain.IssuedToken, error) {
	if subjectID < 0 {
		return domain.IssuedToken{}, ErrInvalidSubject
	}
	if !role.Valid() {
		return domain.IssuedToken{}, fmt.Errorf("%w: %v", rolex.ErrUnknownRole, role)
	}

	o := accessOptions{ttl: s.accessTTL()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ttl <= 0 {
		return domain.IssuedToken{}, ErrInvalidTTL
	}
	for k := range o.extra {
		if jwtx.IsReserved(k) {
			return domain.IssuedToken{}, fmt.Errorf("%w: %q", jwtx.ErrReservedClaim, k)
		}
	}

	claims := jwtx.NewAccessClaims(strconv.FormatInt(subjectID, 10), role.String(), o.ttl, s.Issuer, s.now())
	claims.Extra = o.extra
	return s.sign(claims)
}

// IssueRefresh signs a refresh credential. Its lifetime is fixed by
// RefreshTTL and it carries no role.
func (s *CredentialService) IssueRefresh(subjectID int64) (domain.IssuedToken, error) {
	if subjectID < 0 {
		return domain.IssuedToken{}, ErrInvalidSubject
	}
	claims := jwtx.NewRefreshClaims(strconv.FormatInt(subjectID, 10), s.refreshTTL(), s.Issuer, s.now())
	return s.sign(claims)
}

// IssuePair issues an access and a refresh credential together.
func (s *CredentialService) IssuePair(subjectID int64, role rolex.Role, opts ...AccessOption) (domain.TokenPair, error) {
	access, err := s.IssueAccess(subjectID, role, opts...)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.IssueRefresh(subjectID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *CredentialService) sign(claims jwtx.Claims) (domain.IssuedToken, error) {
	token, err := s.Tokens.Sign(claims)
	if err != nil {
		return domain.IssuedToken{}, err
	}
	return domain.IssuedToken{
		Token:     token,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ValidateAccess returns the identity asserted by an access credential.
// Every failure is domain.ErrInvalidCredential.
func (s *CredentialService) ValidateAccess(token string) (domain.Identity, error) {
	return s.validate(token, jwtx.TypeAccess)
}

// ValidateRefresh is ValidateAccess for refresh credentials.
func (s *CredentialService) ValidateRefresh(token string) (domain.Identity, error) {
	return s.validate(token, jwtx.TypeRefresh)
}

func (s *CredentialService) validate(token string, want jwtx.TokenType) (domain.Identity, error) {
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, domain.Wrap(domain.KindInvalidCredential, err)
	}
	if err := claims.ValidateType(want); err != nil {
		return domain.Identity{}, domain.Wrap(domain.KindInvalidCredential, err)
	}

	sub, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || sub < 0 {
		return domain.Identity{}, domain.Wrap(domain.KindInvalidCredential,
			fmt.Errorf("%w: subject %q", jwtx.ErrInvalidClaim, claims.Subject))
	}

	id := domain.Identity{
		SubjectID: sub,
		Type:      domain.TokenType(claims.Type),
		TokenID:   claims.ID,
		Extra:     claims.Extra,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}

	if want == jwtx.TypeAccess {
		role, err := rolex.ParseRole(claims.Role)
		if err != nil {
			return domain.Identity{}, domain.Wrap(domain.KindInvalidCredential, err)
		}
		id.Role = role
	}
	return id, nil
}

// Refresh exchanges a refresh credential for a new pair. The role is
// re-read through resolver so demotions take effect on the next refresh.
// Collaborator-facing: no route in this service exchanges refresh tokens.
func (s *CredentialService) Refresh(ctx context.Context, refreshToken string, resolver RoleResolver) (domain.TokenPair, error) {
	id, err := s.ValidateRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}

	role, err := resolver.ResolveRole(ctx, id.SubjectID)
	if err != nil {
		if errors.Is(err, ErrUnknownSubject) || errors.Is(err, rolex.ErrUnknownRole) {
			return domain.TokenPair{}, domain.Wrap(domain.KindInvalidCredential, err)
		}
		return domain.TokenPair{}, fmt.Errorf("resolve role: %w", err)
	}

	pair, err := s.IssuePair(id.SubjectID, role)
	if err != nil {
		return domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("credentials refreshed",
		slog.Int64("sub", id.SubjectID),
		slog.String("role", role.String()),
		slog.String("prev_jti", id.TokenID),
	)
	return pair, nil
}
