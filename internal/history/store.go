// Package history keeps an optional log of finished rounds.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/wordguess/internal/shell"
)

// Store records rounds in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the database at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record implements shell.Recorder.
func (s *Store) Record(ctx context.Context, o shell.Outcome) error {
	at := o.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO rounds (session_id, round, word, result, wrong_guesses, finished_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		o.Session, o.Round, o.Word, string(o.Result), o.WrongCount, at.Format(time.RFC3339),
	)
	return err
}

// Stats summarises one session's rounds.
type Stats struct {
	Played     int `json:"played"` // won + lost; skipped rounds do not count
	Won        int `json:"won"`
	Lost       int `json:"lost"`
	Skipped    int `json:"skipped"`
	Streak     int `json:"streak"`
	BestStreak int `json:"bestStreak"`
}

// Stats returns the totals for session. Skipped rounds leave streaks alone.
func (s *Store) Stats(ctx context.Context, session string) (Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT result FROM rounds WHERE session_id=? ORDER BY id ASC`, session)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	var st Stats
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return Stats{}, err
		}
		switch shell.Result(r) {
		case shell.Won:
			st.Won++
			st.Streak++
			if st.Streak > st.BestStreak {
				st.BestStreak = st.Streak
			}
		case shell.Lost:
			st.Lost++
			st.Streak = 0
		case shell.Skipped:
			st.Skipped++
		}
	}
	st.Played = st.Won + st.Lost
	return st, rows.Err()
}

// Nop discards rounds. Used when no history database is configured.
type Nop struct{}

func (Nop) Record(context.Context, shell.Outcome) error { return nil }
