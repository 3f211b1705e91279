package service

import (
	"net/url"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/signx"
)

// DocumentKind is the capability kind for document downloads.
const DocumentKind = "document"

// DocumentDownloadPrefix is where signed download paths point.
const DocumentDownloadPrefix = "/v1/documents/download/"

// CapabilityService issues and checks signed, expiring capabilities.
type CapabilityService struct {
	Issuer *signx.Issuer
}

func (s *CapabilityService) Issue(kind, id string, ttl time.Duration, extra map[string]any) (signx.Capability, error) {
	return s.Issuer.Issue(kind, id, ttl, extra)
}

// Verify narrows every failure, expired or forged, to
// domain.ErrCapabilityInvalid.
func (s *CapabilityService) Verify(kind, id string, expires int64, signature string, extra map[string]any) error {
	if err := s.Issuer.Verify(kind, id, expires, signature, extra); err != nil {
		return domain.Wrap(domain.KindCapabilityInvalid, err)
	}
	return nil
}

// VerifyQuery is Verify with expires and signature taken from q.
func (s *CapabilityService) VerifyQuery(kind, id string, q url.Values, extra map[string]any) error {
	if err := s.Issuer.VerifyQuery(kind, id, q, extra); err != nil {
		return domain.Wrap(domain.KindCapabilityInvalid, err)
	}
	return nil
}

// DocumentDownloadPath returns a signed download path for the document
// with public id, valid for ttl (zero means the issuer default).
func (s *CapabilityService) DocumentDownloadPath(publicID string, ttl time.Duration) (string, signx.Capability, error) {
	return s.Issuer.SignedPath(DocumentDownloadPrefix+url.PathEscape(publicID), DocumentKind, publicID, ttl)
}
