package domain

import "time"

// SecretBundle is a persisted, sealed copy of the generated key material
// used in persistent secret storage mode.
type SecretBundle struct {
	ID        string    // ULID
	Version   int       // payload format version
	Sealed    []byte    // AES-256-GCM sealed JSON
	CreatedAt time.Time
}
