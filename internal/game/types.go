// internal/game/types.go
//
// Core type definitions for the guessing game.
// Defines:
//   - Oracle: the capability that supplies secret words and hints.
//   - State: attempts, secret word, and round counter for one player.
//   - Sentinel errors.

package game

import (
	"context"
	"errors"
)

const (
	// DefaultAttempts is the number of wrong guesses allowed per round.
	DefaultAttempts = 5
	// DefaultMaxDraws bounds how often a repeated word is redrawn.
	DefaultMaxDraws = 5
)

var (
	// ErrRepeatedWord is wrapped in an *oracle.Error when every draw
	// returned the previous secret word.
	ErrRepeatedWord = errors.New("oracle kept repeating the previous word")
	// ErrNoRound is returned when an operation needs a secret word and
	// no round has started yet.
	ErrNoRound = errors.New("no round in progress")
)

// Oracle supplies secret words and hints. Implementations may keep a
// conversation so the provider remembers words it already handed out.
type Oracle interface {
	// Draw returns a new word, asked to differ from exclude ("" on the first draw).
	Draw(ctx context.Context, exclude string) (string, error)
	// Hint returns a short description of word.
	Hint(ctx context.Context, word string) (string, error)
}

// State holds one player's game. It is not safe for concurrent use; the
// presentation layer serialises access.
type State struct {
	oracle   Oracle
	maxDraws int

	attempts int    // remaining wrong guesses, never negative
	word     string // lowercased, trimmed; "" before the first round
	round    uint64 // increments with every drawn word
}
