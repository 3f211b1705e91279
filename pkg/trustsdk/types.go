package trustsdk

import (
	"time"

	"github.com/aussiebroadwan/trustgate/pkg/paysig"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	// Error is a machine readable code such as "invalid_token".
	Error string `json:"error"`

	// ErrorDescription is a human readable description. It never carries
	// the internal reason a credential or capability was rejected.
	ErrorDescription string `json:"error_description,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Storage  string `json:"storage"`
}

// MeResponse describes the caller of GET /v1/auth/me.
type MeResponse struct {
	// ID is the obfuscated subject id.
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RolesResponse is the role level table. Higher levels dominate lower ones.
type RolesResponse struct {
	Roles map[string]int `json:"roles"`
}

// DocumentsResponse lists the caller's documents by public id.
type DocumentsResponse struct {
	Documents []string `json:"documents"`
}

// SignedURLRequest is the optional body of POST /v1/documents/{id}/signed-url.
type SignedURLRequest struct {
	// TTLSeconds overrides the server default lifetime when positive.
	TTLSeconds int `json:"ttl_seconds,omitempty"`
}

// SignedURLResponse carries a download path with its capability query.
type SignedURLResponse struct {
	URL       string    `json:"url"`
	Expires   int64     `json:"expires"`
	Signature string    `json:"signature"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SealRequest is the body of POST /v1/params/seal.
type SealRequest struct {
	Payload map[string]any `json:"payload"`
}

// SealResponse carries an opaque, URL-safe encrypted parameter token.
type SealResponse struct {
	Token string `json:"token"`
}

// OpenRequest is the body of POST /v1/params/open.
type OpenRequest struct {
	Token string `json:"token"`
}

// OpenResponse carries the decrypted payload. JSON numbers come back as
// float64.
type OpenResponse struct {
	Payload map[string]any `json:"payload"`
}

// PaymentNotification is the provider webhook body.
type PaymentNotification = paysig.Notification

// PaymentWebhookResponse reports the normalized status of a verified
// notification.
type PaymentWebhookResponse struct {
	OrderID string               `json:"order_id"`
	Status  paysig.PaymentStatus `json:"status"`
	Final   bool                 `json:"final"`
}
