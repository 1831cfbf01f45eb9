// Package app builds the game components from configuration. Both the
// server and the terminal client wire themselves through it.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordguess/internal/config"
	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/history"
	"github.com/robalobadob/wordguess/internal/oracle"
	"github.com/robalobadob/wordguess/internal/shell"
	"github.com/robalobadob/wordguess/internal/words"
)

// OracleFactory returns a fresh oracle, with its own conversation, per player.
type OracleFactory func() game.Oracle

// NewOracleFactory connects to the configured oracle. The returned close
// function releases shared clients.
func NewOracleFactory(ctx context.Context, cfg config.Config) (OracleFactory, func() error, error) {
	switch cfg.Oracle {
	case config.OracleOffline:
		l, err := words.Load(cfg.WordsFile)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Int("words", l.Len()).Msg("using offline oracle")
		o := oracle.NewOffline(l)
		return func() game.Oracle { return o }, func() error { return nil }, nil

	case config.OracleGemini:
		g, err := oracle.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		// One limiter for the whole process: it bounds traffic to the provider.
		lim := rate.NewLimiter(rate.Limit(cfg.OracleRPS), cfg.OracleBurst)
		opts := oracle.Options{Language: cfg.Language, Limiter: lim, Timeout: cfg.OracleTimeout}
		log.Info().Str("model", cfg.GeminiModel).Str("language", cfg.Language).Msg("using gemini oracle")
		return func() game.Oracle { return oracle.NewSession(g, opts) }, g.Close, nil
	}
	return nil, nil, fmt.Errorf("app: unknown oracle %q", cfg.Oracle)
}

// History is the round recorder plus, when enabled, its stats source.
type History struct {
	Recorder shell.Recorder
	Store    *history.Store // nil when disabled
}

// Close releases the database, if any.
func (h History) Close() error {
	if h.Store == nil {
		return nil
	}
	return h.Store.Close()
}

// OpenHistory opens the round history, or returns a no-op recorder when
// HISTORY_DB is unset.
func OpenHistory(cfg config.Config) (History, error) {
	if cfg.HistoryDB == "" {
		return History{Recorder: history.Nop{}}, nil
	}
	st, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return History{}, err
	}
	log.Info().Str("path", cfg.HistoryDB).Msg("round history enabled")
	return History{Recorder: st, Store: st}, nil
}

// NewShell builds a player's game and window model.
func NewShell(ctx context.Context, cfg config.Config, id string, newOracle OracleFactory, rec shell.Recorder) *shell.Shell {
	st := game.New(newOracle(), game.WithMaxDraws(cfg.MaxDraws))
	return shell.New(ctx, st, shell.Config{
		ID:             id,
		FeedbackDelay:  cfg.FeedbackDelay,
		MaxRoundStarts: cfg.MaxRoundStarts,
		StartTimeout:   cfg.StartTimeout,
		Recorder:       rec,
	})
}
