package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/robalobadob/wordguess/internal/config"
	"github.com/robalobadob/wordguess/internal/history"
)

func offlineConfig() config.Config {
	return config.Config{
		Oracle:         config.OracleOffline,
		MaxDraws:       5,
		MaxRoundStarts: 5,
		MaxSessions:    4,
		OracleRPS:      1,
		OracleBurst:    1,
	}
}

func TestOfflineShellPlaysARound(t *testing.T) {
	ctx := context.Background()
	cfg := offlineConfig()
	factory, closeFn, err := NewOracleFactory(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	sh := NewShell(ctx, cfg, "s1", factory, history.Nop{})
	defer sh.Close()
	if err := sh.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	v := sh.View()
	if v.WordLength == 0 || v.Hint == "" || v.Attempts != 5 {
		t.Errorf("view = %+v", v)
	}
}

func TestGeminiFactoryRequiresKey(t *testing.T) {
	cfg := offlineConfig()
	cfg.Oracle = config.OracleGemini
	if _, _, err := NewOracleFactory(context.Background(), cfg); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestOpenHistory(t *testing.T) {
	cfg := offlineConfig()
	h, err := OpenHistory(cfg)
	if err != nil || h.Store != nil {
		t.Fatalf("disabled history = %+v, %v", h, err)
	}
	if _, ok := h.Recorder.(history.Nop); !ok {
		t.Errorf("recorder = %T", h.Recorder)
	}

	cfg.HistoryDB = filepath.Join(t.TempDir(), "h.db")
	h, err = OpenHistory(cfg)
	if err != nil || h.Store == nil {
		t.Fatalf("enabled history = %+v, %v", h, err)
	}
	if err := h.Close(); err != nil {
		t.Error(err)
	}
}
