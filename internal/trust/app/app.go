package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	httpapi "github.com/aussiebroadwan/trustgate/internal/trust/http"
	"github.com/aussiebroadwan/trustgate/internal/trust/service"
	"github.com/aussiebroadwan/trustgate/internal/trust/store"
	"github.com/aussiebroadwan/trustgate/internal/trust/store/drivers/filesystem"
	"github.com/aussiebroadwan/trustgate/internal/trust/store/drivers/sqlite"
	"github.com/aussiebroadwan/trustgate/pkg/cryptox"
	"github.com/aussiebroadwan/trustgate/pkg/httpx"
	"github.com/aussiebroadwan/trustgate/pkg/slogx"
)

const (
	// BuildVersion is overridden at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application owns the process lifetime: storage, the trust core and the
// HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db        store.Store
	documents *filesystem.Documents
	secrets   *domain.Secrets
	core      *service.Core

	server *http.Server
	router *httpapi.Router
}

// New validates cfg and wires every dependency. The secret bundle is built
// here, once, before anything can serve a request.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "trustgate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	secrets, err := InitSecrets(context.Background(), app.cfg, app.db, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize secrets: %w", err)
	}
	app.secrets = secrets

	if err := app.initCore(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	docs, err := filesystem.NewDocuments(app.cfg.StoragePath)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to open document storage: %w", err)
	}
	app.documents = docs

	app.initHTTP()
	return app, nil
}

// Handler exposes the routed handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the server and blocks until a shutdown signal or server error.
func (app *Application) Run() error {
	app.logger.Info("trust service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"secret_mode", app.cfg.SecretStorageMode,
		"algorithm", app.cfg.JWTAlgorithm,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests for up to the grace period, then
// releases storage.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down trust service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.documents.Close(); err != nil {
		app.logger.Error("error closing document storage", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("trust service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initCore() error {
	pepper, err := cryptox.LoadOrGeneratePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	core, err := service.NewCore(app.secrets, service.Options{
		Algorithm:     app.cfg.JWTAlgorithm,
		Issuer:        app.cfg.Issuer,
		AccessTTL:     app.cfg.AccessTTL,
		RefreshTTL:    app.cfg.RefreshTTL,
		MinIDLength:   app.cfg.HashidsMinLength,
		CapabilityTTL: app.cfg.SignedURLTTL,
		Password: cryptox.HasherConfig{
			Algorithm:  app.cfg.PasswordAlgorithm,
			BcryptCost: app.cfg.BcryptCost,
			Pepper:     pepper,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build trust core: %w", err)
	}
	app.core = core
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.core,
		app.db,
		app.documents,
		httpx.CookieConfig{Secure: app.cfg.CookieSecure},
		BuildVersion,
		app.logger,
	)
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
