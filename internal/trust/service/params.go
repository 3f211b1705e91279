package service

import (
	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/sealx"
)

// ParamService seals parameter payloads into opaque tokens.
type ParamService struct {
	Codec *sealx.Codec
}

func (s *ParamService) Seal(payload map[string]any) (string, error) {
	return s.Codec.Encrypt(payload)
}

// Open returns domain.ErrDecryptionFailed for any token it cannot
// authenticate.
func (s *ParamService) Open(token string) (map[string]any, error) {
	out, err := s.Codec.Decrypt(token)
	if err != nil {
		return nil, domain.Wrap(domain.KindDecryptionFailed, err)
	}
	return out, nil
}
