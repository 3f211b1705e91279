package jwtx

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HMACSigner signs and verifies tokens with a shared secret. It is
// immutable after construction.
type HMACSigner struct {
	method *jwt.SigningMethodHMAC
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// Option configures an HMACSigner.
type Option func(*HMACSigner)

// WithIssuer sets the iss claim a token must carry. Empty means "don't care".
func WithIssuer(iss string) Option {
	return func(s *HMACSigner) { s.issuer = iss }
}

// WithLeeway allows small clock skew when validating exp/iat.
func WithLeeway(d time.Duration) Option {
	return func(s *HMACSigner) { s.leeway = d }
}

// WithClock overrides the time source used during verification.
func WithClock(now func() time.Time) Option {
	return func(s *HMACSigner) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSignerHMAC creates an HS256, HS384 or HS512 signer.
func NewSignerHMAC(alg string, secret []byte, opts ...Option) (*HMACSigner, error) {
	var method *jwt.SigningMethodHMAC
	switch alg {
	case AlgorithmHS256, "":
		method = jwt.SigningMethodHS256
	case AlgorithmHS384:
		method = jwt.SigningMethodHS384
	case AlgorithmHS512:
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: %q", ErrAlgorithm, alg)
	}
	if len(secret) < MinSecretSize {
		return nil, ErrWeakSecret
	}

	s := &HMACSigner{
		method: method,
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *HMACSigner) Alg() string { return s.method.Alg() }

// Issuer returns the configured iss value.
func (s *HMACSigner) Issuer() string { return s.issuer }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HMACSigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	out, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return out, nil
}

// Verify validates signature, algorithm, exp (required), iat and iss and
// returns the parsed claims. The token type is not checked here.
func (s *HMACSigner) Verify(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaim
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub", ErrInvalidClaim)
	}

	return claims, nil
}
