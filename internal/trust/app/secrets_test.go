package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/trustgate/internal/trust/store/drivers/sqlite"
	"github.com/aussiebroadwan/trustgate/pkg/cryptox"
	"github.com/aussiebroadwan/trustgate/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.ApplyMigrations())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInitSecrets_EnvMode(t *testing.T) {
	cfg := validEnvConfig()
	s, err := InitSecrets(context.Background(), cfg, newTestDB(t), slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, []byte(cfg.JWTSecret), s.SigningKey())
	require.Equal(t, []byte(cfg.AESKey), s.EncryptionKey())
	require.Equal(t, cfg.HashidsSalt, s.ObfuscationSalt())
	require.Equal(t, cfg.PaymentServerKey, s.PaymentServerKey())

	cfg.AESKey = "short"
	_, err = InitSecrets(context.Background(), cfg, newTestDB(t), slogx.Discard())
	require.Error(t, err)
}

func TestInitSecrets_PersistentMode(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	cfg := validEnvConfig()
	cfg.SecretStorageMode = SecretModePersistent
	cfg.JWTSecret, cfg.AESKey, cfg.HashidsSalt = "", "", ""
	cfg.MasterKey = "correct horse battery staple"

	first, err := InitSecrets(ctx, cfg, db, slogx.Discard())
	require.NoError(t, err)
	require.Len(t, first.EncryptionKey(), 32)
	require.Len(t, first.SigningKey(), cryptox.SigningKeySize)
	require.NotEmpty(t, first.ObfuscationSalt())

	second, err := InitSecrets(ctx, cfg, db, slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, first.SigningKey(), second.SigningKey())
	require.Equal(t, first.EncryptionKey(), second.EncryptionKey())
	require.Equal(t, first.ObfuscationSalt(), second.ObfuscationSalt())
	require.Equal(t, first.CapabilityKey(), second.CapabilityKey())

	rec, err := db.SecretBundles().GetActive(ctx)
	require.NoError(t, err)
	require.NotContains(t, string(rec.Sealed), first.ObfuscationSalt())

	cfg.MasterKey = "wrong master key"
	_, err = InitSecrets(ctx, cfg, db, slogx.Discard())
	require.ErrorIs(t, err, cryptox.ErrDecryptionFailed)
}

func TestInitSecrets_UnsupportedBundleVersion(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	cfg := validEnvConfig()
	cfg.SecretStorageMode = SecretModePersistent
	cfg.MasterKey = "master"

	_, err := InitSecrets(ctx, cfg, db, slogx.Discard())
	require.NoError(t, err)

	rec, err := db.SecretBundles().GetActive(ctx)
	require.NoError(t, err)

	aead, err := cryptox.NewAEAD(cryptox.DeriveKey([]byte("master")))
	require.NoError(t, err)
	rec.Version = 2
	_, err = openBundle(aead, rec)
	require.ErrorIs(t, err, ErrBundleVersion)
}

func TestLoadMasterKey(t *testing.T) {
	t.Run("env wins", func(t *testing.T) {
		key, err := loadMasterKey(Config{MasterKey: "inline", MasterKeyPath: "/nonexistent/key"})
		require.NoError(t, err)
		require.Equal(t, []byte("inline"), key)
	})

	t.Run("generated once then reused", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keys", "master.key")

		first, err := loadMasterKey(Config{MasterKeyPath: path})
		require.NoError(t, err)
		require.Len(t, first, 64)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0600), info.Mode().Perm())

		second, err := loadMasterKey(Config{MasterKeyPath: path})
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "master.key")
		require.NoError(t, os.WriteFile(path, []byte("\n"), 0600))
		_, err := loadMasterKey(Config{MasterKeyPath: path})
		require.Error(t, err)
	})
}
