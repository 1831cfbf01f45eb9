package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ORACLE", "offline")
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "5175" || c.FeedbackDelay != 1500*time.Millisecond || c.MaxDraws != 5 {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.HistoryDB != "" {
		t.Error("history must be off by default")
	}
}

func TestLoadGeminiNeedsKey(t *testing.T) {
	t.Setenv("ORACLE", "Gemini")
	t.Setenv("GEMINI_API", "")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API") {
		t.Fatalf("expected missing key error, got %v", err)
	}

	t.Setenv("GEMINI_API", "k")
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Oracle != OracleGemini || c.GeminiAPIKey != "k" {
		t.Errorf("config = %+v", c)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ORACLE", "offline")
	t.Setenv("FEEDBACK_DELAY", "2s")
	t.Setenv("MAX_ROUND_STARTS", "3")
	t.Setenv("WORD_LANGUAGE", "Portuguese")
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.FeedbackDelay != 2*time.Second || c.MaxRoundStarts != 3 || c.Language != "Portuguese" {
		t.Errorf("config = %+v", c)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Oracle: OracleOffline, MaxDraws: 1, MaxRoundStarts: 1, MaxSessions: 1, OracleRPS: 1, OracleBurst: 1}
	if err := base.Validate(); err != nil {
		t.Fatalf("base invalid: %v", err)
	}

	bad := base
	bad.Oracle = "chatgpt"
	bad.MaxDraws = 0
	err := bad.Validate()
	if err == nil || !strings.Contains(err.Error(), "ORACLE") || !strings.Contains(err.Error(), "MAX_DRAWS") {
		t.Errorf("expected both problems reported, got %v", err)
	}

	prod := base
	prod.Production = true
	prod.SessionSecret = "dev_secret_change_me"
	if err := prod.Validate(); err == nil {
		t.Error("production with default secret must fail")
	}
}
