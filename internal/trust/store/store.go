package store

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. The only persisted state is the
// sealed secret bundle used in persistent secret storage mode.
type Store interface {
	SecretBundles() SecretBundles

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	Close() error
}

type SecretBundles interface {
	// GetActive returns the most recently created bundle.
	GetActive(ctx context.Context) (domain.SecretBundle, error)

	// Create inserts a bundle. The id is provided by the caller as a ULID.
	Create(ctx context.Context, b domain.SecretBundle) error
}

// Documents is the blob side of storage: files laid out per owner.
type Documents interface {
	// Open returns the document's content. The caller closes it.
	Open(ctx context.Context, ownerID, docID int64) (Document, error)

	// List returns the ids of an owner's documents in ascending order.
	List(ctx context.Context, ownerID int64) ([]int64, error)

	// Ping verifies the storage root is reachable.
	Ping(ctx context.Context) error
}

// Document is an open document. Content supports seeking so it can be served
// with range requests.
type Document struct {
	Content interface {
		io.ReadSeeker
		io.Closer
	}
	Name    string
	Size    int64
	ModTime time.Time
}
