// internal/game/engine.go
//
// Game state operations.
// Responsibilities:
//   - Start rounds by drawing a secret word that differs from the last one.
//   - Fetch hints for the current word.
//   - Check guesses and count wrong ones.
//
// Notes:
//   - Word length is always derived from the word, counted in runes.
//   - Redraws are bounded by maxDraws; past that the draw fails with an
//     *oracle.Error wrapping ErrRepeatedWord.

package game

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordguess/internal/oracle"
)

// Option configures a State.
type Option func(*State)

// WithMaxDraws sets the redraw ceiling. Values below 1 are ignored.
func WithMaxDraws(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.maxDraws = n
		}
	}
}

// New returns a State with no word and full attempts.
func New(o Oracle, opts ...Option) *State {
	s := &State{
		oracle:   o,
		maxDraws: DefaultMaxDraws,
		attempts: DefaultAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize trims whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StartRound draws a new secret word. Attempts are left untouched.
func (s *State) StartRound(ctx context.Context) error {
	w, err := s.drawWord(ctx)
	if err != nil {
		return err
	}
	s.word = w
	s.round++
	return nil
}

// StartNewRound restores full attempts and starts a round.
func (s *State) StartNewRound(ctx context.Context) error {
	s.ResetAttempts()
	return s.StartRound(ctx)
}

// drawWord asks the oracle until it returns something other than the
// current word, at most maxDraws times.
func (s *State) drawWord(ctx context.Context) (string, error) {
	for i := 0; i < s.maxDraws; i++ {
		raw, err := s.oracle.Draw(ctx, s.word)
		if err != nil {
			return "", err
		}
		w := Normalize(raw)
		if w == "" {
			return "", &oracle.Error{Op: "draw", Err: oracle.ErrMalformedReply}
		}
		if w != s.word {
			return w, nil
		}
	}
	return "", &oracle.Error{Op: "draw", Err: fmt.Errorf("%w after %d draws", ErrRepeatedWord, s.maxDraws)}
}

// FetchHint asks the oracle to describe the current word.
func (s *State) FetchHint(ctx context.Context) (string, error) {
	if s.word == "" {
		return "", ErrNoRound
	}
	h, err := s.oracle.Hint(ctx, s.word)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(h), nil
}

// CheckGuess reports whether guess matches the secret word.
func (s *State) CheckGuess(guess string) bool {
	return s.word != "" && Normalize(guess) == s.word
}

// RecordWrongGuess spends one attempt and returns how many are left.
func (s *State) RecordWrongGuess() int {
	if s.attempts > 0 {
		s.attempts--
	}
	return s.attempts
}

// ResetAttempts restores DefaultAttempts.
func (s *State) ResetAttempts() { s.attempts = DefaultAttempts }

func (s *State) Attempts() int { return s.attempts }

// Exhausted reports whether no attempts are left.
func (s *State) Exhausted() bool { return s.attempts == 0 }

func (s *State) Word() string { return s.word }

// WordLength is the number of letters in the secret word.
func (s *State) WordLength() int { return utf8.RuneCountInString(s.word) }

// Round identifies the current word; it changes on every successful draw.
func (s *State) Round() uint64 { return s.round }

// Masked renders one placeholder group per letter.
func (s *State) Masked() string {
	n := s.WordLength()
	if n == 0 {
		return ""
	}
	return strings.TrimSpace(strings.Repeat("___ ", n))
}
