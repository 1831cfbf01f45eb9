package words

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	l, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Len() == 0 {
		t.Fatal("expected embedded words")
	}
	h, ok := l.Hint("abacaxi")
	if !ok || h == "" {
		t.Errorf("expected hint for abacaxi, got %q %v", h, ok)
	}
}

func TestParseSkipsInvalidLines(t *testing.T) {
	l, err := Parse([]string{
		"# comment",
		"",
		"no separator",
		"two words|nope",
		"waytoolongword|nope",
		" Apple |'A red fruit'",
		"apple|'duplicate'",
		"pear|",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", l.Len())
	}
	if h, _ := l.Hint("APPLE"); h != "'A red fruit'" {
		t.Errorf("unexpected hint %q", h)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse([]string{"# nothing"}); err == nil {
		t.Fatal("expected error for empty list")
	}
}

func TestDrawExcludes(t *testing.T) {
	l, err := Parse([]string{"sun|hot", "moon|night"})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		if w := l.Draw("sun"); w != "moon" {
			t.Fatalf("draw %d returned %q", i, w)
		}
	}
}

func TestDrawSingleEntry(t *testing.T) {
	l, err := Parse([]string{"sun|hot"})
	if err != nil {
		t.Fatal(err)
	}
	if w := l.Draw("sun"); w != "sun" {
		t.Errorf("expected only word, got %q", w)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("casa|'Where you live'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w := l.Draw(""); w != "casa" {
		t.Errorf("expected casa, got %q", w)
	}
}
