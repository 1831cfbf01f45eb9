// main.go
//
// Entry point for the wordguess HTTP server.
// Loads configuration, connects the word oracle, opens the optional round
// history, and serves the game until SIGINT/SIGTERM.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordguess/internal/app"
	"github.com/robalobadob/wordguess/internal/config"
	"github.com/robalobadob/wordguess/internal/httpserver"
	"github.com/robalobadob/wordguess/internal/shell"
	"github.com/robalobadob/wordguess/internal/store"
)

// sweepEvery is how often idle sessions are dropped.
const sweepEvery = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	newOracle, closeOracle, err := app.NewOracleFactory(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect word oracle")
	}
	defer closeOracle()

	hist, err := app.OpenHistory(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open round history")
	}
	defer hist.Close()

	sessions, err := store.NewSessions(cfg.MaxSessions, cfg.SessionTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session store")
	}
	defer sessions.Purge()

	opts := httpserver.Options{
		Sessions: sessions,
		NewShell: func(id string) *shell.Shell {
			return app.NewShell(ctx, cfg, id, newOracle, hist.Recorder)
		},
		SessionSecret: cfg.SessionSecret,
		Secure:        cfg.Production,
		ClientOrigin:  cfg.ClientOrigin,
		ActionRPS:     cfg.ActionRPS,
		ActionBurst:   cfg.ActionBurst,
	}
	if hist.Store != nil {
		opts.Stats = hist.Store
	}
	srv := httpserver.New(opts)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("oracle", cfg.Oracle).Msg("starting wordguess server")
		return srv.Serve(gctx, ":"+cfg.Port)
	})
	g.Go(func() error {
		t := time.NewTicker(sweepEvery)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-t.C:
				if n := sessions.Sweep(now); n > 0 {
					log.Debug().Int("dropped", n).Int("live", sessions.Len()).Msg("swept idle sessions")
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server exited")
		return
	}
	log.Info().Msg("server stopped")
}
