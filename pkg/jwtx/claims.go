package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 60 * time.Minute

	// DefaultRefreshTokenTTL is the fixed lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenType distinguishes access from refresh credentials.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// ReservedClaims cannot be set through Claims.Extra.
var ReservedClaims = []string{"sub", "iss", "aud", "exp", "nbf", "iat", "jti", "role", "type"}

var (
	ErrReservedClaim = errors.New("jwtx: reserved claim in extra")
	ErrWrongType     = errors.New("jwtx: wrong token type")
)

// IsReserved reports whether name is one of ReservedClaims.
func IsReserved(name string) bool {
	return slices.Contains(ReservedClaims, name)
}

// Claims are the credential claims. Extra is flattened into the top-level
// JSON object next to the registered claims.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the wire name of the subject's role. Empty on refresh tokens.
	Role string `json:"role,omitempty"`

	// Type is "access" or "refresh".
	Type TokenType `json:"type"`

	// Extra holds caller supplied claims. Numbers decode as float64.
	Extra map[string]any `json:"-"`
}

// NewAccessClaims builds access-token claims issued at now.
func NewAccessClaims(subject, role string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Role: role,
		Type: TypeAccess,
	}
}

// NewRefreshClaims builds refresh-token claims. They carry no role so that
// a refresh always re-reads the subject's current role.
func NewRefreshClaims(subject string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Type: TypeRefresh,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// MarshalJSON flattens Extra into the claim set. A reserved name in Extra
// is an error.
func (c Claims) MarshalJSON() ([]byte, error) {
	type plain Claims
	base, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]json.RawMessage, len(c.Extra)+8)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range c.Extra {
		if IsReserved(k) {
			return nil, fmt.Errorf("%w: %q", ErrReservedClaim, k)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("jwtx: encode claim %q: %w", k, err)
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// UnmarshalJSON collects every non-reserved member into Extra.
func (c *Claims) UnmarshalJSON(b []byte) error {
	type plain Claims
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for _, k := range ReservedClaims {
		delete(all, k)
	}
	if len(all) > 0 {
		p.Extra = all
	}

	*c = Claims(p)
	return nil
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateType rejects a refresh token presented as access and vice versa.
func (c *Claims) ValidateType(want TokenType) error {
	if c.Type != want {
		return fmt.Errorf("%w: got %q, want %q", ErrWrongType, c.Type, want)
	}
	return nil
}
