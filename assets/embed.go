// Package assets embeds the offline word list and the browser page.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt index.html
var FS embed.FS

// readLines returns the non-empty, non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// WordLines returns the raw "word|hint" lines of the offline list.
func WordLines() ([]string, error) {
	return readLines("words.txt")
}

// IndexHTML returns the single-page browser front end.
func IndexHTML() ([]byte, error) {
	return FS.ReadFile("index.html")
}
