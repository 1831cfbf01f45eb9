package oracle

import (
	"fmt"
	"strings"
)

const (
	// MaxWordLetters is the longest word the oracle is asked for.
	MaxWordLetters = 10
	// HintBudget is the hint length requested in the prompt. Advisory only.
	HintBudget = 35
)

func drawPrompt(lang, exclude string) string {
	var b strings.Builder
	b.WriteString("Generate a word for a guessing game.\n")
	fmt.Fprintf(&b, "The word must be in %s and have at most %d letters.\n", lang, MaxWordLetters)
	if exclude != "" {
		fmt.Fprintf(&b, "The word cannot be %q.\n", exclude)
	}
	b.WriteString("The word can be about any topic.\n")
	b.WriteString("Check the spelling of the word before sending it.\n")
	b.WriteString("Reply with the word only.")
	return b.String()
}

func hintPrompt(lang, word string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Give a hint of at most %d letters about a word in a guessing game.\n", HintBudget)
	fmt.Fprintf(&b, "The chosen word is %q.\n", word)
	fmt.Fprintf(&b, "Write the hint in %s, in this format: 'sentence with the hint'\n", lang)
	fmt.Fprintf(&b, "Do not exceed %d characters.\n", HintBudget)
	b.WriteString("ELI5")
	return b.String()
}
