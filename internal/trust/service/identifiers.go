package service

import (
	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/hashidx"
)

// IdentifierService obfuscates internal integer ids for outward use.
type IdentifierService struct {
	Obfuscator *hashidx.Obfuscator
}

func (s *IdentifierService) Encode(id int64) (string, error) {
	if id < 0 {
		return "", hashidx.ErrOutOfRange
	}
	return s.Obfuscator.Encode(uint64(id))
}

// Decode returns domain.ErrMalformedIdentifier for anything Encode could
// not have produced.
func (s *IdentifierService) Decode(public string) (int64, error) {
	id, err := s.Obfuscator.Decode(public)
	if err != nil {
		return 0, domain.Wrap(domain.KindMalformedIdentifier, err)
	}
	return int64(id), nil // #nosec G115 - Decode never exceeds MaxInt64
}

// EncodeMany packs several ids, in order, into one public string.
func (s *IdentifierService) EncodeMany(ids ...int64) (string, error) {
	raw := make([]uint64, len(ids))
	for i, id := range ids {
		if id < 0 {
			return "", hashidx.ErrOutOfRange
		}
		raw[i] = uint64(id)
	}
	return s.Obfuscator.EncodeMany(raw...)
}

// DecodeN reverses EncodeMany and requires exactly n ids.
func (s *IdentifierService) DecodeN(public string, n int) ([]int64, error) {
	raw, err := s.Obfuscator.DecodeN(public, n)
	if err != nil {
		return nil, domain.Wrap(domain.KindMalformedIdentifier, err)
	}
	ids := make([]int64, len(raw))
	for i, id := range raw {
		ids[i] = int64(id) // #nosec G115 - DecodeN never exceeds MaxInt64
	}
	return ids, nil
}
