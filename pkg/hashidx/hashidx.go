// Package hashidx turns internal numeric identifiers into short opaque
// strings and back. The mapping is a salted hashids transform: it is
// reversible by anyone holding the salt and is not a security boundary, it
// only stops raw database ids from leaking through URLs.
package hashidx

import (
	"errors"
	"fmt"
	"math"
	"strings"

	hashids "github.com/speps/go-hashids/v2"
)

// DefaultAlphabet is the 62 character set ids are drawn from. hashids
// shuffles it with the salt, so output is not a plain base62 encoding.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultMinLength pads short ids so their magnitude does not show.
const DefaultMinLength = 8

var (
	ErrMalformed  = errors.New("hashidx: malformed identifier")
	ErrOutOfRange = errors.New("hashidx: id out of range")
	ErrEmpty      = errors.New("hashidx: no ids to encode")
	ErrNoSalt     = errors.New("hashidx: salt is required")
)

// Options configures an Obfuscator.
type Options struct {
	Salt      string
	MinLength int    // default DefaultMinLength
	Alphabet  string // default DefaultAlphabet
}

// Obfuscator encodes and decodes ids under a fixed salt. It is immutable
// and safe for concurrent use.
type Obfuscator struct {
	h         *hashids.HashID
	alphabet  string
	minLength int
}

// New builds an Obfuscator. The salt must be non-empty: an unsalted mapping
// would be shared with every other hashids user.
func New(opts Options) (*Obfuscator, error) {
	if opts.Salt == "" {
		return nil, ErrNoSalt
	}
	if opts.MinLength == 0 {
		opts.MinLength = DefaultMinLength
	}
	if opts.MinLength < 0 {
		return nil, fmt.Errorf("hashidx: negative min length %d", opts.MinLength)
	}
	if opts.Alphabet == "" {
		opts.Alphabet = DefaultAlphabet
	}

	hd := hashids.NewData()
	hd.Salt = opts.Salt
	hd.MinLength = opts.MinLength
	hd.Alphabet = opts.Alphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("hashidx: %w", err)
	}

	return &Obfuscator{h: h, alphabet: opts.Alphabet, minLength: opts.MinLength}, nil
}

// Encode returns the opaque form of a single id.
func (o *Obfuscator) Encode(id uint64) (string, error) {
	return o.EncodeMany(id)
}

// EncodeMany packs several ids into one opaque string. Order is preserved.
func (o *Obfuscator) EncodeMany(ids ...uint64) (string, error) {
	if len(ids) == 0 {
		return "", ErrEmpty
	}

	nums := make([]int64, len(ids))
	for i, id := range ids {
		if id > math.MaxInt64 {
			return "", fmt.Errorf("%w: %d", ErrOutOfRange, id)
		}
		nums[i] = int64(id)
	}

	s, err := o.h.EncodeInt64(nums)
	if err != nil {
		return "", fmt.Errorf("hashidx: encode: %w", err)
	}
	return s, nil
}

// MustEncode is Encode for ids known to be in range. Panics otherwise.
func (o *Obfuscator) MustEncode(id uint64) string {
	s, err := o.Encode(id)
	if err != nil {
		panic(err)
	}
	return s
}

// Decode reverses Encode. Strings carrying more than one id are malformed.
func (o *Obfuscator) Decode(s string) (uint64, error) {
	ids, err := o.DecodeN(s, 1)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// DecodeN decodes s and requires exactly n ids.
func (o *Obfuscator) DecodeN(s string, n int) ([]uint64, error) {
	ids, err := o.DecodeMany(s)
	if err != nil {
		return nil, err
	}
	if len(ids) != n {
		return nil, fmt.Errorf("%w: want %d ids, got %d", ErrMalformed, n, len(ids))
	}
	return ids, nil
}

// DecodeMany reverses EncodeMany. Any string EncodeMany could not have
// produced under this salt yields ErrMalformed.
func (o *Obfuscator) DecodeMany(s string) ([]uint64, error) {
	if len(s) < o.minLength || s == "" {
		return nil, ErrMalformed
	}
	for _, r := range s {
		if !strings.ContainsRune(o.alphabet, r) {
			return nil, ErrMalformed
		}
	}

	nums, err := o.decode(s)
	if err != nil || len(nums) == 0 {
		return nil, ErrMalformed
	}

	ids := make([]uint64, len(nums))
	for i, n := range nums {
		if n < 0 {
			return nil, ErrMalformed
		}
		ids[i] = uint64(n)
	}

	// Only canonical encodings are accepted.
	again, err := o.h.EncodeInt64(nums)
	if err != nil || again != s {
		return nil, ErrMalformed
	}
	return ids, nil
}

// decode shields callers from panics inside the hashids decoder on
// adversarial input.
func (o *Obfuscator) decode(s string) (nums []int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			nums, err = nil, ErrMalformed
		}
	}()
	return o.h.DecodeInt64WithError(s)
}
