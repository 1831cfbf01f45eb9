// Package config loads runtime settings from the environment (and a .env
// file in development).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	OracleGemini  = "gemini"
	OracleOffline = "offline"
)

// Config holds every setting. Field tags name the environment variables.
type Config struct {
	// Oracle
	Oracle        string        `envconfig:"ORACLE" default:"gemini"`
	GeminiAPIKey  string        `envconfig:"GEMINI_API"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	Language      string        `envconfig:"WORD_LANGUAGE" default:"English"`
	WordsFile     string        `envconfig:"WORDS_FILE"` // offline oracle list; embedded default when empty
	OracleRPS     float64       `envconfig:"ORACLE_RPS" default:"2"`
	OracleBurst   int           `envconfig:"ORACLE_BURST" default:"4"`
	OracleTimeout time.Duration `envconfig:"ORACLE_TIMEOUT" default:"20s"`

	// Game
	MaxDraws       int           `envconfig:"MAX_DRAWS" default:"5"`
	MaxRoundStarts int           `envconfig:"MAX_ROUND_STARTS" default:"5"`
	StartTimeout   time.Duration `envconfig:"ROUND_START_TIMEOUT" default:"90s"`
	FeedbackDelay  time.Duration `envconfig:"FEEDBACK_DELAY" default:"1500ms"`

	// Server
	Port          string        `envconfig:"PORT" default:"5175"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	ClientOrigin  string        `envconfig:"CLIENT_ORIGIN" default:"http://localhost:5173"`
	SessionSecret string        `envconfig:"SESSION_SECRET" default:"dev_secret_change_me"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"2h"`
	MaxSessions   int           `envconfig:"MAX_SESSIONS" default:"1024"`
	ActionRPS     float64       `envconfig:"ACTION_RPS" default:"5"`
	ActionBurst   int           `envconfig:"ACTION_BURST" default:"10"`
	Production    bool          `envconfig:"PRODUCTION" default:"false"`

	// Optional SQLite round history; disabled when empty.
	HistoryDB string `envconfig:"HISTORY_DB"`
}

// Load reads .env (if present) and the environment, then validates.
func Load() (Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c.Oracle = strings.ToLower(strings.TrimSpace(c.Oracle))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks settings that have no usable fallback.
func (c Config) Validate() error {
	var errs []error
	switch c.Oracle {
	case OracleGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API is required for the gemini oracle (or set ORACLE=offline)"))
		}
	case OracleOffline:
	default:
		errs = append(errs, fmt.Errorf("ORACLE must be %q or %q, got %q", OracleGemini, OracleOffline, c.Oracle))
	}
	if c.MaxDraws < 1 {
		errs = append(errs, errors.New("MAX_DRAWS must be at least 1"))
	}
	if c.MaxRoundStarts < 1 {
		errs = append(errs, errors.New("MAX_ROUND_STARTS must be at least 1"))
	}
	if c.MaxSessions < 1 {
		errs = append(errs, errors.New("MAX_SESSIONS must be at least 1"))
	}
	if c.OracleRPS <= 0 || c.OracleBurst < 1 {
		errs = append(errs, errors.New("ORACLE_RPS and ORACLE_BURST must be positive"))
	}
	if c.Production && c.SessionSecret == "dev_secret_change_me" {
		errs = append(errs, errors.New("SESSION_SECRET must be set in production"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
