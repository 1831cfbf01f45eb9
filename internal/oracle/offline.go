package oracle

import (
	"context"
	"fmt"

	"github.com/robalobadob/wordguess/internal/words"
)

// Offline serves words and hints from a local list. It needs no network
// and is meant for development and demos.
type Offline struct {
	list *words.List
}

// NewOffline returns an oracle backed by l.
func NewOffline(l *words.List) *Offline { return &Offline{list: l} }

func (o *Offline) Draw(ctx context.Context, exclude string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{Op: "draw", Err: err}
	}
	return o.list.Draw(exclude), nil
}

func (o *Offline) Hint(ctx context.Context, word string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{Op: "hint", Err: err}
	}
	h, ok := o.list.Hint(word)
	if !ok {
		return "", &Error{Op: "hint", Err: fmt.Errorf("%w: %q", ErrUnknownWord, word)}
	}
	return h, nil
}
