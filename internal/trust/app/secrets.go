package app

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/internal/trust/store"
	"github.com/aussiebroadwan/trustgate/pkg/cryptox"
	"github.com/aussiebroadwan/trustgate/pkg/idx"
)

const bundleVersion = 1

var ErrBundleVersion = errors.New("app: unsupported secret bundle version")

// bundlePayload is the plaintext sealed into a domain.SecretBundle.
// []byte fields marshal as standard base64.
type bundlePayload struct {
	SigningKey      []byte `json:"signing_key"`
	EncryptionKey   []byte `json:"encryption_key"`
	ObfuscationSalt string `json:"obfuscation_salt"`
}

// InitSecrets builds the process secret bundle.
//
// Storage modes:
//   - "env": key material comes from JWT_SECRET, AES_KEY and HASHIDS_SALT.
//   - "persistent": key material is generated on first boot, sealed under
//     the master key and stored in the database. Later boots open the
//     stored bundle, so tokens and obfuscated ids survive restarts.
//
// The payment server key always comes from the environment.
func InitSecrets(ctx context.Context, cfg Config, db store.Store, logger *slog.Logger) (*domain.Secrets, error) {
	switch cfg.SecretStorageMode {
	case SecretModePersistent:
		master, err := loadMasterKey(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load master key: %w", err)
		}
		payload, err := loadOrCreateBundle(ctx, db.SecretBundles(), master, time.Now, logger)
		if err != nil {
			return nil, err
		}
		return domain.NewSecrets(domain.SecretsInput{
			SigningKey:       payload.SigningKey,
			EncryptionKey:    payload.EncryptionKey,
			ObfuscationSalt:  payload.ObfuscationSalt,
			PaymentServerKey: cfg.PaymentServerKey,
		})

	case SecretModeEnv:
		logger.Info("loading secrets from environment")
		return domain.NewSecrets(domain.SecretsInput{
			SigningKey:       []byte(cfg.JWTSecret),
			EncryptionKey:    []byte(cfg.AESKey),
			ObfuscationSalt:  cfg.HashidsSalt,
			PaymentServerKey: cfg.PaymentServerKey,
		})

	default:
		return nil, fmt.Errorf("unknown secret storage mode %q", cfg.SecretStorageMode)
	}
}

func loadOrCreateBundle(ctx context.Context, bundles store.SecretBundles, master []byte, now func() time.Time, logger *slog.Logger) (bundlePayload, error) {
	aead, err := cryptox.NewAEAD(cryptox.DeriveKey(master))
	if err != nil {
		return bundlePayload{}, err
	}

	rec, err := bundles.GetActive(ctx)
	switch {
	case err == nil:
		payload, err := openBundle(aead, rec)
		if err != nil {
			return bundlePayload{}, fmt.Errorf("failed to open secret bundle %s: %w", rec.ID, err)
		}
		logger.Info("secret bundle loaded",
			"bundle_id", rec.ID,
			"created_at", rec.CreatedAt,
			"signing_key_fingerprint", cryptox.Fingerprint(payload.SigningKey),
		)
		return payload, nil

	case errors.Is(err, store.ErrNotFound):
		payload, err := generateBundle()
		if err != nil {
			return bundlePayload{}, err
		}

		plain, err := json.Marshal(payload)
		if err != nil {
			return bundlePayload{}, err
		}
		sealed, err := aead.Seal(plain)
		if err != nil {
			return bundlePayload{}, fmt.Errorf("failed to seal secret bundle: %w", err)
		}

		created := now()
		rec := domain.SecretBundle{
			ID:        idx.NewAt(created).String(),
			Version:   bundleVersion,
			Sealed:    sealed,
			CreatedAt: created,
		}
		if err := bundles.Create(ctx, rec); err != nil {
			return bundlePayload{}, fmt.Errorf("failed to store secret bundle: %w", err)
		}

		logger.Info("generated new secret bundle",
			"bundle_id", rec.ID,
			"signing_key_fingerprint", cryptox.Fingerprint(payload.SigningKey),
		)
		return payload, nil

	default:
		return bundlePayload{}, fmt.Errorf("failed to load secret bundle: %w", err)
	}
}

func openBundle(aead *cryptox.AEAD, rec domain.SecretBundle) (bundlePayload, error) {
	if rec.Version != bundleVersion {
		return bundlePayload{}, fmt.Errorf("%w: %d", ErrBundleVersion, rec.Version)
	}

	plain, err := aead.Open(rec.Sealed)
	if err != nil {
		return bundlePayload{}, err
	}

	var payload bundlePayload
	if err := json.Unmarshal(plain, &payload); err != nil {
		return bundlePayload{}, fmt.Errorf("decode secret bundle: %w", err)
	}
	return payload, nil
}

func generateBundle() (bundlePayload, error) {
	signing, err := cryptox.RandomBytes(cryptox.SigningKeySize)
	if err != nil {
		return bundlePayload{}, err
	}
	enc, err := cryptox.RandomBytes(cryptox.KeySize)
	if err != nil {
		return bundlePayload{}, err
	}
	salt, err := cryptox.GenerateToken(cryptox.SaltSize)
	if err != nil {
		return bundlePayload{}, err
	}
	return bundlePayload{SigningKey: signing, EncryptionKey: enc, ObfuscationSalt: salt}, nil
}

// loadMasterKey prefers TRUST_MASTER_KEY and otherwise reads MASTER_KEY_PATH,
// writing a fresh random key there on first use.
func loadMasterKey(cfg Config) ([]byte, error) {
	if cfg.MasterKey != "" {
		return []byte(cfg.MasterKey), nil
	}
	if cfg.MasterKeyPath == "" {
		return nil, errors.New("no master key configured")
	}

	path := filepath.Clean(cfg.MasterKeyPath)
	data, err := os.ReadFile(path)
	if err == nil {
		key := strings.TrimSpace(string(data))
		if key == "" {
			return nil, fmt.Errorf("master key file %s is empty", path)
		}
		return []byte(key), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}
	buf, err := cryptox.RandomBytes(cryptox.KeySize)
	if err != nil {
		return nil, err
	}
	key := hex.EncodeToString(buf)
	if err := os.WriteFile(path, []byte(key), 0600); err != nil {
		return nil, err
	}
	return []byte(key), nil
}
