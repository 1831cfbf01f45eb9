package shell

import (
	"context"
	"time"
)

// Result is how a round ended.
type Result string

const (
	Won     Result = "won"
	Lost    Result = "lost"
	Skipped Result = "skipped"
)

// Outcome describes a finished round.
type Outcome struct {
	Session    string
	Round      uint64
	Word       string
	Result     Result
	WrongCount int
	At         time.Time
}

// Recorder receives finished rounds.
type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}
