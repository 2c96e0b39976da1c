// Package appservice assembles the hearth backend: it loads configuration,
// opens the entity store, constructs every concept and the synchronization
// layer, and runs the HTTP server until shutdown.
package appservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hearth-social/hearth/server/internal/concepts/authenticating"
	"github.com/hearth-social/hearth/server/internal/concepts/eventing"
	"github.com/hearth-social/hearth/server/internal/concepts/friending"
	"github.com/hearth-social/hearth/server/internal/concepts/grouping"
	"github.com/hearth-social/hearth/server/internal/concepts/posting"
	"github.com/hearth-social/hearth/server/internal/concepts/sessioning"
	"github.com/hearth-social/hearth/server/internal/concepts/translating"
	"github.com/hearth-social/hearth/server/internal/config"
	"github.com/hearth-social/hearth/server/internal/docstore"
	"github.com/hearth-social/hearth/server/internal/logger"
	"github.com/hearth-social/hearth/server/internal/sync"
)

// Run starts the hearth HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("hearth-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("translator_url", cfg.TranslatorURL).
		Msg("Hearth service starting")

	ctx, stop := newServerContext()
	defer stop()

	db, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	syncs, err := buildSyncs(db, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to assemble concepts")
		return err
	}

	server := newHTTPServer(ctx, cfg, syncs.Router())
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func openStore(cfg *config.Config, log zerolog.Logger) (*docstore.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := docstore.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			log.Error().Stack().Err(err).Msg("Postgres store unavailable")
			return nil, err
		}
		return db, nil
	case "sqlite":
		db, err := docstore.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Error().Stack().Err(err).Str("path", cfg.SQLitePath).Msg("SQLite store unavailable")
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

// buildSyncs constructs the seven concepts over one store and hands them to
// the synchronization layer. Concepts never see each other.
func buildSyncs(db *docstore.DB, cfg *config.Config, log zerolog.Logger) (*sync.Syncs, error) {
	auth, err := authenticating.New(db)
	if err != nil {
		return nil, err
	}
	sessions, err := sessioning.New(db)
	if err != nil {
		return nil, err
	}
	friends, err := friending.New(db)
	if err != nil {
		return nil, err
	}
	groups, err := grouping.New(db)
	if err != nil {
		return nil, err
	}
	posts, err := posting.New(db)
	if err != nil {
		return nil, err
	}
	events, err := eventing.New(db)
	if err != nil {
		return nil, err
	}
	translator, err := translating.New(db, cfg.TranslatorURL, cfg.TranslatorTimeout)
	if err != nil {
		return nil, err
	}
	return sync.New(log, cfg.SessionCookie, sync.Deps{
		Auth:       auth,
		Sessions:   sessions,
		Friends:    friends,
		Groups:     groups,
		Posts:      posts,
		Events:     events,
		Translator: translator,
	}), nil
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
