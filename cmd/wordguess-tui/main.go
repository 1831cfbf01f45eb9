// Command wordguess-tui plays the guessing game in a terminal window.
// It reads the same environment as the server; logs go to the file named
// by WORDGUESS_LOG, or nowhere.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguess/internal/app"
	"github.com/robalobadob/wordguess/internal/config"
	"github.com/robalobadob/wordguess/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "wordguess:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var out io.Writer = io.Discard
	if path := os.Getenv("WORDGUESS_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	newOracle, closeOracle, err := app.NewOracleFactory(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeOracle()

	hist, err := app.OpenHistory(cfg)
	if err != nil {
		return err
	}
	defer hist.Close()

	sh := app.NewShell(ctx, cfg, "local", newOracle, hist.Recorder)
	defer sh.Close()

	_, err = tea.NewProgram(tui.New(ctx, sh)).Run()
	return err
}
