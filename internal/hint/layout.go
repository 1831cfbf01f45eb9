// Package hint fits oracle hints into the two-line hint label.
package hint

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Limits are measured in runes.
const (
	ShortLimit = 40 // at or below: shown as is
	LongLimit  = 80 // above: rejected
	Width      = 40 // first-line budget when wrapping
)

// ErrTooLong is returned for hints that cannot fit on two lines.
var ErrTooLong = errors.New("hint too long")

// Layout returns the text to display for h.
func Layout(h string) (string, error) {
	n := utf8.RuneCountInString(h)
	switch {
	case n <= ShortLimit:
		return h, nil
	case n <= LongLimit:
		return strings.Join(Wrap(h, Width), "\n"), nil
	default:
		return "", ErrTooLong
	}
}

// Wrap splits h into at most two lines at a single space, leaving the rest
// of the text untouched. Words are packed greedily onto the first line while
// it stays within width; everything else goes on the second. A first word
// longer than width is cut at width.
func Wrap(h string, width int) []string {
	if strings.TrimSpace(h) == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}
	if utf8.RuneCountInString(h) <= width {
		return []string{h}
	}

	parts := strings.Split(h, " ")
	size, split := 0, 0
	for i, w := range parts {
		n := utf8.RuneCountInString(w)
		if i > 0 {
			n++
		}
		if size+n > width {
			break
		}
		size += n
		split = i + 1
	}

	if split == 0 {
		r := []rune(h)
		return []string{string(r[:width]), string(r[width:])}
	}
	return []string{strings.Join(parts[:split], " "), strings.Join(parts[split:], " ")}
}
