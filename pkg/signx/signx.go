// Package signx issues and verifies time-limited capabilities: HMAC-SHA256
// signatures over (kind, id, expiry, extra) that grant access to a single
// resource without a session.
package signx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTTL is used when Issue is called with a zero ttl.
const DefaultTTL = 30 * time.Minute

// MinKeySize is the shortest HMAC key accepted by New.
const MinKeySize = 16

var (
	// ErrInvalidCapability is wrapped by every verification failure.
	ErrInvalidCapability = errors.New("signx: invalid capability")
	ErrExpired           = fmt.Errorf("%w: expired", ErrInvalidCapability)
	ErrInvalidSignature  = fmt.Errorf("%w: signature mismatch", ErrInvalidCapability)

	ErrKeyTooShort = errors.New("signx: key too short")
	ErrInvalidTTL  = errors.New("signx: ttl must be positive")
	ErrEmptyKind   = errors.New("signx: kind must not be empty")
	ErrSeparator   = errors.New("signx: kind and id must not contain ':'")
)

// Capability is what a client presents to redeem a signed resource.
type Capability struct {
	Expires   int64  `json:"expires"`
	Signature string `json:"signature"`
}

// Values returns the capability as query parameters.
func (c Capability) Values() url.Values {
	return url.Values{
		"expires":   {strconv.FormatInt(c.Expires, 10)},
		"signature": {c.Signature},
	}
}

// Query renders expires=<unix>&signature=<hex>.
func (c Capability) Query() string {
	return c.Values().Encode()
}

// ExpiresAt is Expires as a time.Time.
func (c Capability) ExpiresAt() time.Time {
	return time.Unix(c.Expires, 0).UTC()
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// WithDefaultTTL overrides DefaultTTL.
func WithDefaultTTL(d time.Duration) Option {
	return func(i *Issuer) {
		if d > 0 {
			i.defaultTTL = d
		}
	}
}

// Issuer is immutable after New and safe for concurrent use.
type Issuer struct {
	key        []byte
	now        func() time.Time
	defaultTTL time.Duration
}

func New(key []byte, opts ...Option) (*Issuer, error) {
	if len(key) < MinKeySize {
		return nil, ErrKeyTooShort
	}

	i := &Issuer{
		key:        append([]byte(nil), key...),
		now:        time.Now,
		defaultTTL: DefaultTTL,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// DefaultTTL reports the ttl used when Issue receives zero.
func (i *Issuer) DefaultTTL() time.Duration { return i.defaultTTL }

// Issue signs a capability for (kind, id) valid for ttl. Neither kind nor
// id may contain ':'. extra binds additional context into the signature and
// must be presented unchanged at verification.
func (i *Issuer) Issue(kind, id string, ttl time.Duration, extra map[string]any) (Capability, error) {
	if kind == "" {
		return Capability{}, ErrEmptyKind
	}
	if ttl == 0 {
		ttl = i.defaultTTL
	}
	if ttl < 0 {
		return Capability{}, ErrInvalidTTL
	}

	expires := i.now().Add(ttl).Unix()
	sig, err := i.sign(kind, id, expires, extra)
	if err != nil {
		return Capability{}, err
	}
	return Capability{Expires: expires, Signature: sig}, nil
}

// SignedPath appends a fresh capability for (kind, id) to path.
func (i *Issuer) SignedPath(path, kind, id string, ttl time.Duration) (string, Capability, error) {
	c, err := i.Issue(kind, id, ttl, nil)
	if err != nil {
		return "", Capability{}, err
	}
	return path + "?" + c.Query(), c, nil
}

// Verify checks expiry first, then the signature. Both failures wrap
// ErrInvalidCapability.
func (i *Issuer) Verify(kind, id string, expires int64, signature string, extra map[string]any) error {
	if i.now().Unix() > expires {
		return ErrExpired
	}

	want, err := i.sign(kind, id, expires, extra)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	got, err := hex.DecodeString(strings.ToLower(signature))
	if err != nil {
		return ErrInvalidSignature
	}
	wantRaw, _ := hex.DecodeString(want)
	if !hmac.Equal(got, wantRaw) {
		return ErrInvalidSignature
	}
	return nil
}

// VerifyQuery reads expires and signature from q and calls Verify.
func (i *Issuer) VerifyQuery(kind, id string, q url.Values, extra map[string]any) error {
	expires, err := strconv.ParseInt(q.Get("expires"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad expires", ErrInvalidSignature)
	}
	return i.Verify(kind, id, expires, q.Get("signature"), extra)
}

func (i *Issuer) sign(kind, id string, expires int64, extra map[string]any) (string, error) {
	payload, err := canonical(kind, id, expires, extra)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, i.key)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// canonical builds kind:id:expires[:json(extra)]. encoding/json sorts map
// keys, so equal maps always produce equal payloads.
func canonical(kind, id string, expires int64, extra map[string]any) (string, error) {
	if strings.Contains(kind, ":") || strings.Contains(id, ":") {
		return "", ErrSeparator
	}

	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte(':')
	b.WriteString(id)
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(expires, 10))

	if len(extra) > 0 {
		raw, err := json.Marshal(extra)
		if err != nil {
			return "", fmt.Errorf("signx: encode extra: %w", err)
		}
		b.WriteByte(':')
		b.Write(raw)
	}
	return b.String(), nil
}
