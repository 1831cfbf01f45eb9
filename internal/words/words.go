// internal/words/words.go
//
// Word/hint list used by the offline oracle.
//
// Responsibilities:
//   - Load "word|hint" pairs from a file (WORDS_FILE) or fall back to the
//     embedded assets/words.txt list.
//   - Draw a random word that differs from the previous one.
//   - Look up the hint for a word.
//
// Constraints:
//   • Words are trimmed and lowercased, at most MaxLetters runes, no spaces.
//   • Duplicate words keep the first hint.
//   • Lines starting with '#' are comments.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/valyala/fastrand"

	"github.com/robalobadob/wordguess/assets"
)

// MaxLetters matches the limit the remote oracle is asked to respect.
const MaxLetters = 10

// Entry is one secret word and its hint.
type Entry struct {
	Word string
	Hint string
}

// List is an immutable set of entries. Safe for concurrent use.
type List struct {
	entries []Entry
	hints   map[string]string
}

// Load reads the list from path, or the embedded default when path is empty.
func Load(path string) (*List, error) {
	var (
		lines []string
		err   error
	)
	if path == "" {
		lines, err = assets.WordLines()
	} else {
		lines, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: load: %w", err)
	}
	return Parse(lines)
}

// Parse builds a List from "word|hint" lines. Invalid lines are skipped.
func Parse(lines []string) (*List, error) {
	l := &List{hints: make(map[string]string)}
	for _, line := range lines {
		e, ok := parseLine(line)
		if !ok {
			continue
		}
		if _, dup := l.hints[e.Word]; dup {
			continue
		}
		l.hints[e.Word] = e.Hint
		l.entries = append(l.entries, e)
	}
	if len(l.entries) == 0 {
		return nil, errors.New("words: list is empty")
	}
	return l, nil
}

// parseLine splits "word|hint" and validates the word.
func parseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}
	word, hint, found := strings.Cut(line, "|")
	if !found {
		return Entry{}, false
	}
	word = strings.ToLower(strings.TrimSpace(word))
	hint = strings.TrimSpace(hint)
	if word == "" || hint == "" || strings.ContainsAny(word, " \t") || utf8.RuneCountInString(word) > MaxLetters {
		return Entry{}, false
	}
	return Entry{Word: word, Hint: hint}, true
}

// readWordFile loads raw lines from a file on disk.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// Draw returns a random word other than exclude.
// With a single-entry list the only word is returned even if it equals exclude.
func (l *List) Draw(exclude string) string {
	pool := lo.Filter(l.entries, func(e Entry, _ int) bool { return e.Word != exclude })
	if len(pool) == 0 {
		pool = l.entries
	}
	return pool[fastrand.Uint32n(uint32(len(pool)))].Word
}

// Hint returns the hint for word.
func (l *List) Hint(word string) (string, bool) {
	h, ok := l.hints[strings.ToLower(strings.TrimSpace(word))]
	return h, ok
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }
