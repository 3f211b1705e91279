package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/cryptox"
	"github.com/aussiebroadwan/trustgate/pkg/jwtx"
)

// Secret storage modes.
const (
	SecretModeEnv        = "env"
	SecretModePersistent = "persistent"
)

type Config struct {
	JWTSecret    string        // Required in env mode: HMAC signing key, at least 32 bytes
	JWTAlgorithm string        // Optional: HS256, HS384, HS512 (default: HS256)
	AccessTTL    time.Duration // Optional: JWT_EXPIRY_MINUTES (default: 60m)
	RefreshTTL   time.Duration // Optional: JWT_REFRESH_TTL (default: 168h)
	Issuer       string        // Optional: iss claim, checked on verify when set

	HashidsSalt      string // Required in env mode
	HashidsMinLength int    // Optional (default: 8)

	AESKey       string        // Required in env mode: exactly 32 bytes
	SignedURLTTL time.Duration // Optional: SIGNED_URL_EXPIRY_SECONDS (default: 30m)

	PaymentServerKey string // Required: MIDTRANS_SERVER_KEY

	PasswordAlgorithm string // Optional: bcrypt, argon2id (default: bcrypt)
	BcryptCost        int    // Optional (default: 12)
	PepperFile        string // Optional: path to the password pepper, created if missing

	SecretStorageMode string // Optional: env, persistent (default: env)
	MasterKeyPath     string // Persistent mode: path to master key file, created if missing
	MasterKey         string // Persistent mode: TRUST_MASTER_KEY, wins over MasterKeyPath

	DatabaseFile string // Optional: SQLite database file (default: trust.db)
	StoragePath  string // Optional: document root for downloads (default: ./storage/documents)
	CookieSecure bool   // Optional: mark auth cookies Secure (default: true outside dev)

	Env                 string        // dev, staging, prod (default: dev)
	LogLevel            string        // debug, info, warn, error (default: info)
	LogFormat           string        // json, text (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment, first loading ENV_FILE (default .env)
// when it exists. Variables already set in the process environment win over
// the file.
func LoadConfig() Config {
	envFile := getEnvOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load env file", "path", envFile, "error", err)
	}

	env := getEnvOrDefault("ENV", "dev")

	return Config{
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTAlgorithm: strings.ToUpper(getEnvOrDefault("JWT_ALGORITHM", jwtx.AlgorithmHS256)),
		AccessTTL:    time.Duration(getEnvIntOrDefault("JWT_EXPIRY_MINUTES", 60)) * time.Minute,
		RefreshTTL:   getEnvDurationOrDefault("JWT_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		Issuer:       os.Getenv("JWT_ISSUER"),

		HashidsSalt:      os.Getenv("HASHIDS_SALT"),
		HashidsMinLength: getEnvIntOrDefault("HASHIDS_MIN_LENGTH", 8),

		AESKey:       os.Getenv("AES_KEY"),
		SignedURLTTL: time.Duration(getEnvIntOrDefault("SIGNED_URL_EXPIRY_SECONDS", 1800)) * time.Second,

		PaymentServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),

		PasswordAlgorithm: getEnvOrDefault("PASSWORD_ALGORITHM", cryptox.AlgorithmBcrypt),
		BcryptCost:        getEnvIntOrDefault("BCRYPT_COST", 12),
		PepperFile:        os.Getenv("PEPPER_FILE"),

		SecretStorageMode: strings.ToLower(getEnvOrDefault("SECRET_STORAGE_MODE", SecretModeEnv)),
		MasterKeyPath:     getEnvOrDefault("MASTER_KEY_PATH", "master.key"),
		MasterKey:         os.Getenv("TRUST_MASTER_KEY"),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "trust.db"),
		StoragePath:  getEnvOrDefault("STORAGE_PATH", "./storage/documents"),
		CookieSecure: getEnvBoolOrDefault("COOKIE_SECURE", env != "dev"),

		Env:                 env,
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate reports every problem with cfg at once.
func (cfg Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	switch cfg.JWTAlgorithm {
	case jwtx.AlgorithmHS256, jwtx.AlgorithmHS384, jwtx.AlgorithmHS512:
	default:
		add("JWT_ALGORITHM: unsupported algorithm %q", cfg.JWTAlgorithm)
	}
	if cfg.AccessTTL <= 0 {
		add("JWT_EXPIRY_MINUTES: must be positive")
	}
	if cfg.RefreshTTL <= 0 {
		add("JWT_REFRESH_TTL: must be positive")
	}
	if cfg.SignedURLTTL <= 0 {
		add("SIGNED_URL_EXPIRY_SECONDS: must be positive")
	}
	if cfg.HashidsMinLength < 0 {
		add("HASHIDS_MIN_LENGTH: must not be negative")
	}
	if cfg.PaymentServerKey == "" {
		add("MIDTRANS_SERVER_KEY: required")
	}

	switch strings.ToLower(cfg.PasswordAlgorithm) {
	case cryptox.AlgorithmBcrypt, cryptox.AlgorithmArgon2id:
	default:
		add("PASSWORD_ALGORITHM: unsupported algorithm %q", cfg.PasswordAlgorithm)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		add("BCRYPT_COST: must be between 4 and 31")
	}

	switch cfg.SecretStorageMode {
	case SecretModeEnv:
		if len(cfg.JWTSecret) < domain.MinSigningKeySize {
			add("JWT_SECRET: must be at least %d bytes", domain.MinSigningKeySize)
		}
		if len(cfg.AESKey) != domain.EncryptionKeySize {
			add("AES_KEY: must be exactly %d bytes", domain.EncryptionKeySize)
		}
		if cfg.HashidsSalt == "" {
			add("HASHIDS_SALT: required")
		}
	case SecretModePersistent:
		if cfg.MasterKey == "" && cfg.MasterKeyPath == "" {
			add("TRUST_MASTER_KEY or MASTER_KEY_PATH: required in persistent mode")
		}
	default:
		add("SECRET_STORAGE_MODE: must be %q or %q", SecretModeEnv, SecretModePersistent)
	}

	if cfg.DatabaseFile == "" {
		add("DATABASE_FILE: required")
	}
	if cfg.StoragePath == "" {
		add("STORAGE_PATH: required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		add("PORT: out of range")
	}
	if cfg.ShutdownGracePeriod <= 0 {
		add("SHUTDOWN_GRACE_PERIOD: must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
