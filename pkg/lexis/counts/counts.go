// Package counts aggregates token statistics over a line source.
package counts

import (
	"sort"
	"unicode/utf8"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/source"
)

// Frequencies maps a token to the number of times it occurred
type Frequencies map[string]int

// Entry is one row of a frequency table
type Entry struct {
	Token string
	Count int
}

// Predicate decides whether a token is counted
type Predicate func(token string) bool

// WordFrequency counts every token in src for which keep returns true.
// A nil keep counts all tokens. On a source error no table is returned.
func WordFrequency(src source.Source, keep Predicate) (Frequencies, error) {
	tokenizer := ingest.NewTokenizer()
	freq := make(Frequencies)

	for line, err := range src.Lines() {
		if err != nil {
			return nil, err
		}
		for _, tok := range tokenizer.Tokenize(line) {
			if keep != nil && !keep(tok) {
				continue
			}
			freq[tok]++
		}
	}

	return freq, nil
}

// Total returns the sum of all counts
func (f Frequencies) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}

// Keys returns the tokens of the table as a Set
func (f Frequencies) Keys() Set {
	s := make(Set, len(f))
	for tok := range f {
		s[tok] = struct{}{}
	}
	return s
}

// MostCommon returns the n highest counts, ordered by count descending and
// then by token so that equal counts always come out in the same order.
// n <= 0 returns every entry.
func (f Frequencies) MostCommon(n int) []Entry {
	entries := make([]Entry, 0, len(f))
	for tok, count := range f {
		entries = append(entries, Entry{Token: tok, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Token < entries[j].Token
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// MinLength keeps tokens of at least n characters
func MinLength(n int) Predicate {
	return func(tok string) bool {
		return utf8.RuneCountInString(tok) >= n
	}
}

// MaxLength keeps tokens of at most n characters
func MaxLength(n int) Predicate {
	return func(tok string) bool {
		return utf8.RuneCountInString(tok) <= n
	}
}

// All keeps tokens accepted by every non-nil predicate.
// It returns nil when no predicate is given.
func All(preds ...Predicate) Predicate {
	var active []Predicate
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}

	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}

	return func(tok string) bool {
		for _, p := range active {
			if !p(tok) {
				return false
			}
		}
		return true
	}
}
