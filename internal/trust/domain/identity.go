package domain

import (
	"time"

	"github.com/aussiebroadwan/trustgate/pkg/rolex"
)

// TokenType distinguishes access from refresh credentials.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// Identity is what a validated credential asserts. Role is only meaningful
// for access credentials.
type Identity struct {
	SubjectID int64
	Role      rolex.Role
	Type      TokenType
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Extra     map[string]any
}

// IssuedToken is a freshly signed credential.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenPair represents an access and refresh credential issued together.
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}
