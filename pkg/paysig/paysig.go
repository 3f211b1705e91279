// Package paysig authenticates payment-provider notifications.
//
// The provider signs each notification with
// hex(SHA-512(order_id + status_code + gross_amount + server_key)).
package paysig

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrSignatureMismatch = errors.New("paysig: signature mismatch")
	ErrNoServerKey       = errors.New("paysig: server key is empty")
)

// Verifier holds the shared server key. Safe for concurrent use.
type Verifier struct {
	serverKey string
}

func New(serverKey string) (*Verifier, error) {
	if serverKey == "" {
		return nil, ErrNoServerKey
	}
	return &Verifier{serverKey: serverKey}, nil
}

// Sign returns the lowercase hex signature the provider would send.
func (v *Verifier) Sign(orderID, statusCode, grossAmount string) string {
	return hex.EncodeToString(v.digest(orderID, statusCode, grossAmount))
}

// Verify compares signature against the expected digest in constant time.
// Hex case is ignored.
func (v *Verifier) Verify(orderID, statusCode, grossAmount, signature string) error {
	got, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(signature)))
	if err != nil {
		return ErrSignatureMismatch
	}
	if !hmac.Equal(got, v.digest(orderID, statusCode, grossAmount)) {
		return ErrSignatureMismatch
	}
	return nil
}

// VerifyNotification verifies n.SignatureKey against n's signed fields.
func (v *Verifier) VerifyNotification(n Notification) error {
	return v.Verify(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey)
}

func (v *Verifier) digest(orderID, statusCode, grossAmount string) []byte {
	h := sha512.New()
	h.Write([]byte(orderID))
	h.Write([]byte(statusCode))
	h.Write([]byte(grossAmount))
	h.Write([]byte(v.serverKey))
	return h.Sum(nil)
}
