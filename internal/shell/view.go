package shell

import (
	"fmt"

	"github.com/enescakir/emoji"
)

// Player-facing texts.
var (
	FeedbackPrompt  = "Answer:"
	FeedbackCorrect = "Correct answer! " + emoji.PartyPopper.String()
	FeedbackWrong   = "Wrong answer! " + emoji.CrossMark.String()
	FatalMessage    = "Could not start a round. Try a new word later."
)

// View is everything a front end needs to draw the game window.
type View struct {
	Hint          string `json:"hint"` // may contain one "\n"
	Masked        string `json:"masked"`
	WordLength    int    `json:"wordLength"`
	Feedback      string `json:"feedback"`
	Attempts      int    `json:"attempts"`
	AttemptsLabel string `json:"attemptsLabel"`
	Input         string `json:"input"` // contents of the guess field
	Round         uint64 `json:"round"`
	Fatal         string `json:"fatal,omitempty"`
}

func attemptsLabel(n int) string { return fmt.Sprintf("Lives left: %d", n) }
