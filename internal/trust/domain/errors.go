package domain

import "errors"

// Kind is the outward classification of a trust failure. Callers branch
// on the kind; the specific cause is only for logs.
type Kind uint8

const (
	KindInvalidCredential Kind = iota + 1
	KindInsufficientRole
	KindMalformedIdentifier
	KindDecryptionFailed
	KindCapabilityInvalid
	KindExternalSignatureMismatch
)

var kindNames = map[Kind]string{
	KindInvalidCredential:         "invalid_credential",
	KindInsufficientRole:          "insufficient_role",
	KindMalformedIdentifier:       "malformed_identifier",
	KindDecryptionFailed:          "decryption_failed",
	KindCapabilityInvalid:         "capability_invalid",
	KindExternalSignatureMismatch: "external_signature_mismatch",
}

var kindMessages = map[Kind]string{
	KindInvalidCredential:         "invalid credential",
	KindInsufficientRole:          "insufficient role",
	KindMalformedIdentifier:       "malformed identifier",
	KindDecryptionFailed:          "decryption failed",
	KindCapabilityInvalid:         "invalid or expired capability",
	KindExternalSignatureMismatch: "signature mismatch",
}

// String is the snake_case code used in API error bodies.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Error pairs a Kind with the underlying cause. Error() only renders the
// coarse message so it is safe to return to clients.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	if msg, ok := kindMessages[e.Kind]; ok {
		return msg
	}
	return "trust failure"
}

// Cause returns the specific reason, or nil for a bare sentinel.
func (e *Error) Cause() error { return e.cause }

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error of the same kind, so errors.Is(err,
// ErrInvalidCredential) holds regardless of cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidCredential         = &Error{Kind: KindInvalidCredential}
	ErrInsufficientRole          = &Error{Kind: KindInsufficientRole}
	ErrMalformedIdentifier       = &Error{Kind: KindMalformedIdentifier}
	ErrDecryptionFailed          = &Error{Kind: KindDecryptionFailed}
	ErrCapabilityInvalid         = &Error{Kind: KindCapabilityInvalid}
	ErrExternalSignatureMismatch = &Error{Kind: KindExternalSignatureMismatch}
)

// Wrap classifies cause under kind.
func Wrap(kind Kind, cause error) error {
	return &Error{Kind: kind, cause: cause}
}

// KindOf extracts the Kind from err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// CauseOf returns the innermost cause recorded by Wrap, or err itself.
func CauseOf(err error) error {
	var e *Error
	if errors.As(err, &e) && e.cause != nil {
		return e.cause
	}
	return err
}
