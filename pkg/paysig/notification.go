package paysig

// Notification is the webhook body posted by the payment provider. Only
// OrderID, StatusCode and GrossAmount are covered by the signature.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	TransactionID     string `json:"transaction_id,omitempty"`
	PaymentType       string `json:"payment_type,omitempty"`
}

// PaymentStatus is the provider-independent state of a payment.
type PaymentStatus string

const (
	StatusPending  PaymentStatus = "pending"
	StatusSuccess  PaymentStatus = "success"
	StatusFailed   PaymentStatus = "failed"
	StatusExpired  PaymentStatus = "expired"
	StatusRefunded PaymentStatus = "refunded"
)

// Status normalizes the provider's transaction and fraud status. Unknown
// values are treated as pending.
func (n Notification) Status() PaymentStatus {
	switch n.TransactionStatus {
	case "capture":
		if n.FraudStatus == "accept" {
			return StatusSuccess
		}
		return StatusPending
	case "settlement":
		return StatusSuccess
	case "cancel", "deny":
		return StatusFailed
	case "expire":
		return StatusExpired
	case "refund":
		return StatusRefunded
	default:
		return StatusPending
	}
}

// Final reports whether no further notifications are expected to change s.
func (s PaymentStatus) Final() bool {
	return s != StatusPending
}
