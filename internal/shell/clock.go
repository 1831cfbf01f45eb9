package shell

import "time"

// Timer is a pending delayed action.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed actions.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock uses time.AfterFunc.
type SystemClock struct{}

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
