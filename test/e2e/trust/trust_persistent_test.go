//go:build e2e

package trust_test

import (
	"testing"

	"github.com/aussiebroadwan/trustgate/pkg/trustsdk"
	"github.com/stretchr/testify/require"
)

// TestPersistentSecrets starts the service with generated secrets sealed
// into the database. Locally minted tokens are signed with the wrong key
// and must be refused, while unauthenticated surfaces keep working.
func TestPersistentSecrets(t *testing.T) {
	baseURL, cleanup := setupTrustContainer(t, map[string]string{
		"SECRET_STORAGE_MODE": "persistent",
		"TRUST_MASTER_KEY":    "e2e-master-key-material",
		"JWT_SECRET":          "",
		"AES_KEY":             "",
		"HASHIDS_SALT":        "",
	})
	defer cleanup()

	client := trustsdk.NewClient(baseURL)
	ctx := t.Context()

	health, err := client.GetReadiness(ctx)
	assertHealthy(t, health, err)

	_, err = client.NewSession(mintAccessToken(t, 7, "user")).Me(ctx)
	require.ErrorIs(t, err, trustsdk.ErrInvalidToken)

	_, err = client.SendPaymentNotification(ctx, signedNotification(t, "SUB-99", "pending"))
	require.NoError(t, err)
}
