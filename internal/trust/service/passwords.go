package service

import (
	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/cryptox"
)

// PasswordService hashes and checks account passwords.
type PasswordService struct {
	Hasher *cryptox.Hasher
}

func (s *PasswordService) Hash(plaintext string) (string, error) {
	return s.Hasher.Hash(plaintext)
}

// Verify returns domain.ErrInvalidCredential on any mismatch or
// unreadable hash. rehash reports whether the caller should store a fresh
// hash now that the plaintext is known.
func (s *PasswordService) Verify(plaintext, hash string) (rehash bool, err error) {
	if err := s.Hasher.Verify(plaintext, hash); err != nil {
		return false, domain.Wrap(domain.KindInvalidCredential, err)
	}
	return s.Hasher.NeedsRehash(hash), nil
}
