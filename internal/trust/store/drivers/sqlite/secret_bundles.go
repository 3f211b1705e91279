package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
)

type secretBundlesRepo struct {
	db *sql.DB
}

const getActiveSecretBundle = `
SELECT id, version, sealed, created_at
FROM secret_bundles
ORDER BY created_at DESC, id DESC
LIMIT 1
`

func (r *secretBundlesRepo) GetActive(ctx context.Context) (domain.SecretBundle, error) {
	var b domain.SecretBundle
	err := r.db.QueryRowContext(ctx, getActiveSecretBundle).Scan(&b.ID, &b.Version, &b.Sealed, &b.CreatedAt)
	if err != nil {
		return domain.SecretBundle{}, mapNotFound(err)
	}
	return b, nil
}

const createSecretBundle = `
INSERT INTO secret_bundles (id, version, sealed, created_at)
VALUES (?, ?, ?, ?)
`

func (r *secretBundlesRepo) Create(ctx context.Context, b domain.SecretBundle) error {
	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, createSecretBundle, b.ID, b.Version, b.Sealed, createdAt.UTC())
	return mapConstraint(err)
}
