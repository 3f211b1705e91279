package service

import (
	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/paysig"
)

// PaymentService authenticates payment provider notifications.
type PaymentService struct {
	Verifier *paysig.Verifier
}

// VerifyNotification returns the normalized payment status once the
// signature checks out.
func (s *PaymentService) VerifyNotification(n paysig.Notification) (paysig.PaymentStatus, error) {
	if err := s.Verifier.VerifyNotification(n); err != nil {
		return "", domain.Wrap(domain.KindExternalSignatureMismatch, err)
	}
	return n.Status(), nil
}
