package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/amardeep033/pots-of-gold/internal/config"
	"github.com/amardeep033/pots-of-gold/internal/httpserver"
	"github.com/amardeep033/pots-of-gold/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	journal, closeJournal, err := openJournal(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open move journal")
	}
	defer closeJournal()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpserver.New(cfg, journal).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Int("maxPots", cfg.MaxPots).Str("origin", cfg.ClientOrigin).Msg("starting pots-of-gold")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// setupLogging applies LOG_LEVEL and LOG_FORMAT to the global zerolog logger.
func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown LOG_LEVEL, keeping default")
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openJournal picks the SQLite journal when DB_PATH is set, otherwise memory.
func openJournal(cfg config.Config) (store.Store, func(), error) {
	if cfg.DBPath == "" {
		log.Info().Int("limit", cfg.JournalLimit).Msg("using in-memory move journal")
		return store.NewMemoryStore(cfg.JournalLimit), func() {}, nil
	}
	db, err := openDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info().Str("path", cfg.DBPath).Msg("using sqlite move journal")
	return store.NewSQLiteStore(db), func() { _ = db.Close() }, nil
}
