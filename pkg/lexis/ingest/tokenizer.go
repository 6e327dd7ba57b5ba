package ingest

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokenizer splits lines of text into lowercase word tokens.
// A word is a maximal run of letters, digits and underscores; everything
// else separates words and is dropped.
//
// A Tokenizer carries case-mapping state and must not be shared between
// goroutines.
type Tokenizer struct {
	lower cases.Caser
}

// NewTokenizer creates a tokenizer using language-neutral lowercasing
func NewTokenizer() *Tokenizer {
	return &Tokenizer{lower: cases.Lower(language.Und)}
}

// Tokenize returns the tokens of line in left-to-right order.
// The line is lowercased as a whole before scanning, so context-sensitive
// mappings such as a word-final sigma come out right.
func (t *Tokenizer) Tokenize(line string) []string {
	if line == "" {
		return nil
	}

	var tokens []string
	text := t.lower.String(line)
	start := -1

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, text[start:i])
			start = -1
		}
	}

	// Don't forget the last token
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}

	return tokens
}

// Tokenize splits a single line with a fresh Tokenizer.
func Tokenize(line string) []string {
	return NewTokenizer().Tokenize(line)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
