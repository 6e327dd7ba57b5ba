package counts

import (
	"sort"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/source"
)

// Set holds distinct tokens
type Set map[string]struct{}

// UniqueWords collects the distinct tokens of src without counting them.
func UniqueWords(src source.Source) (Set, error) {
	tokenizer := ingest.NewTokenizer()
	set := make(Set)

	for line, err := range src.Lines() {
		if err != nil {
			return nil, err
		}
		for _, tok := range tokenizer.Tokenize(line) {
			set[tok] = struct{}{}
		}
	}

	return set, nil
}

// Contains reports whether tok is in the set
func (s Set) Contains(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Sorted returns the tokens in lexical order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for tok := range s {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}
