package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/cryptox"
	"github.com/aussiebroadwan/trustgate/pkg/hashidx"
	"github.com/aussiebroadwan/trustgate/pkg/jwtx"
	"github.com/aussiebroadwan/trustgate/pkg/paysig"
	"github.com/aussiebroadwan/trustgate/pkg/rolex"
	"github.com/aussiebroadwan/trustgate/pkg/sealx"
	"github.com/aussiebroadwan/trustgate/pkg/signx"
)

// Options carries the non-secret settings for NewCore. Zero values fall
// back to package defaults.
type Options struct {
	Algorithm     string // HS256 (default), HS384, HS512
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Leeway        time.Duration
	MinIDLength   int
	CapabilityTTL time.Duration
	Password      cryptox.HasherConfig
	Hierarchy     *rolex.Hierarchy
	Now           func() time.Time
}

// Core wires every trust component from a single Secrets value. All
// components are immutable and safe for concurrent use.
type Core struct {
	Credentials  *CredentialService
	Authorizer   *Authorizer
	Identifiers  *IdentifierService
	Params       *ParamService
	Capabilities *CapabilityService
	Payments     *PaymentService
	Passwords    *PasswordService
}

func NewCore(secrets *domain.Secrets, opts Options) (*Core, error) {
	if secrets == nil {
		return nil, fmt.Errorf("service: secrets are required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	signer, err := jwtx.NewSignerHMAC(opts.Algorithm, secrets.SigningKey(),
		jwtx.WithIssuer(opts.Issuer),
		jwtx.WithLeeway(opts.Leeway),
		jwtx.WithClock(now),
	)
	if err != nil {
		return nil, fmt.Errorf("service: credential signer: %w", err)
	}

	obf, err := hashidx.New(hashidx.Options{
		Salt:      secrets.ObfuscationSalt(),
		MinLength: opts.MinIDLength,
	})
	if err != nil {
		return nil, fmt.Errorf("service: identifier obfuscator: %w", err)
	}

	codec, err := sealx.New(secrets.EncryptionKey())
	if err != nil {
		return nil, fmt.Errorf("service: parameter codec: %w", err)
	}

	issuer, err := signx.New(secrets.CapabilityKey(),
		signx.WithClock(now),
		signx.WithDefaultTTL(opts.CapabilityTTL),
	)
	if err != nil {
		return nil, fmt.Errorf("service: capability issuer: %w", err)
	}

	verifier, err := paysig.New(secrets.PaymentServerKey())
	if err != nil {
		return nil, fmt.Errorf("service: payment verifier: %w", err)
	}

	hasher, err := cryptox.NewHasher(opts.Password)
	if err != nil {
		return nil, fmt.Errorf("service: password hasher: %w", err)
	}

	hierarchy := opts.Hierarchy
	if hierarchy == nil {
		hierarchy = rolex.Default()
	}

	return &Core{
		Credentials: &CredentialService{
			Tokens:     signer,
			Issuer:     opts.Issuer,
			AccessTTL:  opts.AccessTTL,
			RefreshTTL: opts.RefreshTTL,
			Now:        now,
		},
		Authorizer:   &Authorizer{Hierarchy: hierarchy},
		Identifiers:  &IdentifierService{Obfuscator: obf},
		Params:       &ParamService{Codec: codec},
		Capabilities: &CapabilityService{Issuer: issuer},
		Payments:     &PaymentService{Verifier: verifier},
		Passwords:    &PasswordService{Hasher: hasher},
	}, nil
}
