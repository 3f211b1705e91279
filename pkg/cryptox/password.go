package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hashing algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// bcrypt silently ignores everything after this many bytes, so longer input
// is rejected instead.
const bcryptMaxInput = 72

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

var (
	ErrPasswordTooLong  = errors.New("cryptox: password exceeds 72 bytes")
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrInvalidHash      = errors.New("cryptox: invalid hash format")
	ErrUnknownAlgorithm = errors.New("cryptox: unknown password algorithm")
)

// HasherConfig selects the algorithm and cost used for new hashes. Verify
// always accepts every supported algorithm regardless of this setting.
type HasherConfig struct {
	Algorithm  string // bcrypt (default) or argon2id
	BcryptCost int    // default bcrypt.DefaultCost+2
	Pepper     string // optional server-side secret appended to every password
}

// Hasher is a one-way adaptive password hasher. It holds no mutable state and
// is safe for concurrent use.
type Hasher struct {
	algorithm string
	cost      int
	pepper    string
}

// NewHasher validates cfg and returns a Hasher.
func NewHasher(cfg HasherConfig) (*Hasher, error) {
	alg := strings.ToLower(strings.TrimSpace(cfg.Algorithm))
	if alg == "" {
		alg = AlgorithmBcrypt
	}
	if alg != AlgorithmBcrypt && alg != AlgorithmArgon2id {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
	}

	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost + 2
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("cryptox: bcrypt cost %d out of range [%d,%d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &Hasher{algorithm: alg, cost: cost, pepper: cfg.Pepper}, nil
}

// Algorithm reports the algorithm used for new hashes.
func (h *Hasher) Algorithm() string { return h.algorithm }

// Hash returns an encoded hash string that embeds algorithm, cost and salt.
func (h *Hasher) Hash(password string) (string, error) {
	if h.algorithm == AlgorithmArgon2id {
		return h.hashArgon2id(password)
	}
	return h.hashBcrypt(password)
}

// Verify returns nil iff password matches encodedHash. The algorithm is
// taken from the hash itself.
func (h *Hasher) Verify(password, encodedHash string) error {
	switch {
	case isBcryptHash(encodedHash):
		return h.verifyBcrypt(password, encodedHash)
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return h.verifyArgon2id(password, encodedHash)
	default:
		return ErrInvalidHash
	}
}

// Matches is Verify reduced to a boolean.
func (h *Hasher) Matches(password, encodedHash string) bool {
	return h.Verify(password, encodedHash) == nil
}

// NeedsRehash reports whether encodedHash was produced with a different
// algorithm or cost than the hasher is configured for. Callers typically
// rehash after a successful login.
func (h *Hasher) NeedsRehash(encodedHash string) bool {
	switch {
	case isBcryptHash(encodedHash):
		if h.algorithm != AlgorithmBcrypt {
			return true
		}
		cost, err := bcrypt.Cost([]byte(encodedHash))
		return err != nil || cost != h.cost
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		if h.algorithm != AlgorithmArgon2id {
			return true
		}
		p, err := parseArgon2id(encodedHash)
		return err != nil || p.mem != memory || p.iters != iterations || p.par != parallelism
	default:
		return true
	}
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func (h *Hasher) hashBcrypt(password string) (string, error) {
	input := []byte(password + h.pepper)
	if len(input) > bcryptMaxInput {
		return "", ErrPasswordTooLong
	}
	out, err := bcrypt.GenerateFromPassword(input, h.cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: bcrypt: %w", err)
	}
	return string(out), nil
}

func (h *Hasher) verifyBcrypt(password, encodedHash string) error {
	input := []byte(password + h.pepper)
	if len(input) > bcryptMaxInput {
		// Could never have been produced by hashBcrypt.
		return ErrPasswordMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), input)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}

// hashArgon2id generates a PHC-format Argon2id hash string including salt and parameters.
func (h *Hasher) hashArgon2id(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password+h.pepper), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

type argon2Params struct {
	mem   uint32
	iters uint32
	par   uint8
	salt  []byte
	hash  []byte
}

// parseArgon2id splits $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func parseArgon2id(encodedHash string) (argon2Params, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return argon2Params{}, fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return argon2Params{}, fmt.Errorf("%w: not argon2id", ErrInvalidHash)
	}
	if parts[2] != "v=19" {
		return argon2Params{}, fmt.Errorf("%w: wrong version", ErrInvalidHash)
	}

	var p argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.mem, &p.iters, &p.par); err != nil {
		return argon2Params{}, fmt.Errorf("%w: parameters: %v", ErrInvalidHash, err)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return argon2Params{}, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if p.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return argon2Params{}, fmt.Errorf("%w: hash: %v", ErrInvalidHash, err)
	}
	if len(p.hash) == 0 || p.iters == 0 || p.par == 0 {
		return argon2Params{}, fmt.Errorf("%w: empty parameters", ErrInvalidHash)
	}
	return p, nil
}

func (h *Hasher) verifyArgon2id(password, encodedHash string) error {
	p, err := parseArgon2id(encodedHash)
	if err != nil {
		return err
	}

	computed := argon2.IDKey(
		[]byte(password+h.pepper),
		p.salt,
		p.iters,
		p.mem,
		p.par,
		uint32(len(p.hash)), // #nosec G115 - bounded by the decoded hash
	)

	if subtle.ConstantTimeCompare(computed, p.hash) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}
