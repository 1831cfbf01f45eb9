package oracle

import "errors"

var (
	ErrEmptyReply     = errors.New("empty reply")
	ErrMalformedReply = errors.New("malformed reply")
	ErrUnknownWord    = errors.New("unknown word")
	ErrMissingKey     = errors.New("missing api key")
)

// Error reports a failure of the generation service: transport, auth,
// an empty or malformed reply, or a draw that kept repeating itself.
type Error struct {
	Op  string // "connect", "start", "draw", "hint"
	Err error
}

func (e *Error) Error() string { return "oracle " + e.Op + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// wrap tags err with op unless it already is an *Error.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var oe *Error
	if errors.As(err, &oe) {
		return err
	}
	return &Error{Op: op, Err: err}
}
