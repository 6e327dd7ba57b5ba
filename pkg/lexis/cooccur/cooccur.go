// Package cooccur extracts windowed word co-occurrence pairs.
//
// Pairs are taken over the global token sequence: the tokens of every line
// concatenated in source order, so the last token of one line is adjacent to
// the first token of the next. Unlike frequency counting this needs the whole
// sequence in memory, so memory use grows with the total token count.
package cooccur

import (
	"fmt"
	"sort"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/source"
)

// DefaultWindow is the window radius used when none is configured
const DefaultWindow = 2

// Pair is an ordered pair of tokens: B occurred within the window around A
type Pair struct {
	A, B string
}

// PairSet holds distinct ordered pairs
type PairSet map[Pair]struct{}

// Pairs tokenizes src and returns every ordered pair of tokens at most
// window positions apart. A negative window is rejected before src is read.
func Pairs(src source.Source, window int) (PairSet, error) {
	if err := ValidateWindow(window); err != nil {
		return nil, err
	}

	seq, err := Sequence(src)
	if err != nil {
		return nil, err
	}

	return Window(seq, window), nil
}

// ValidateWindow rejects negative window radii
func ValidateWindow(window int) error {
	if window < 0 {
		return fmt.Errorf("%w: window radius must be non-negative, got %d", internalerr.ErrInvalidInput, window)
	}
	return nil
}

// Sequence materializes the global token sequence of src
func Sequence(src source.Source) ([]string, error) {
	tokenizer := ingest.NewTokenizer()
	var seq []string

	for line, err := range src.Lines() {
		if err != nil {
			return nil, err
		}
		seq = append(seq, tokenizer.Tokenize(line)...)
	}

	return seq, nil
}

// Window pairs each position i of tokens with every position j in
// [i-window, i+window], j != i, clipped to the sequence bounds.
// Windows wider than the sequence are clamped rather than rejected;
// a window of zero or less yields an empty set.
func Window(tokens []string, window int) PairSet {
	pairs := make(PairSet)
	if window <= 0 {
		return pairs
	}

	for i, tok := range tokens {
		lo := max(i-window, 0)
		hi := min(i+window, len(tokens)-1)
		for j := lo; j <= hi; j++ {
			if j == i {
				continue
			}
			pairs[Pair{A: tok, B: tokens[j]}] = struct{}{}
		}
	}

	return pairs
}

// Contains reports whether the ordered pair (a, b) is in the set
func (s PairSet) Contains(a, b string) bool {
	_, ok := s[Pair{A: a, B: b}]
	return ok
}

// Sorted returns the pairs ordered by A, then B
func (s PairSet) Sorted() []Pair {
	out := make([]Pair, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Partners returns the sorted tokens paired with tok as first element
func (s PairSet) Partners(tok string) []string {
	var out []string
	for p := range s {
		if p.A == tok {
			out = append(out, p.B)
		}
	}
	sort.Strings(out)
	return out
}
