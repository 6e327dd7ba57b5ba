// Package lexis provides basic lexical analysis over text: word frequencies,
// unique words and windowed word co-occurrence.
//
// Each function takes either a path to an existing file or the text itself;
// an input naming an existing path is read from disk, anything else is
// analyzed as literal text. Files are streamed line by line.
//
//	freq, err := lexis.WordFrequency("notes.txt", nil)
//	pairs, err := lexis.Cooccurrence("a b c", 1)
//
// The subpackages expose the same operations over any source.Source.
package lexis

import (
	"github.com/cognicore/lexis/pkg/lexis/cooccur"
	"github.com/cognicore/lexis/pkg/lexis/counts"
	"github.com/cognicore/lexis/pkg/lexis/source"
)

// DefaultWindow is the co-occurrence window radius used by the CLI
const DefaultWindow = cooccur.DefaultWindow

// WordFrequency counts the tokens of input accepted by keep (nil keeps all)
func WordFrequency(input string, keep counts.Predicate, opts ...source.Option) (counts.Frequencies, error) {
	return counts.WordFrequency(source.Resolve(input, opts...), keep)
}

// UniqueWords returns the distinct tokens of input
func UniqueWords(input string, opts ...source.Option) (counts.Set, error) {
	return counts.UniqueWords(source.Resolve(input, opts...))
}

// Cooccurrence returns the ordered token pairs of input that lie at most
// window positions apart, across line boundaries
func Cooccurrence(input string, window int, opts ...source.Option) (cooccur.PairSet, error) {
	return cooccur.Pairs(source.Resolve(input, opts...), window)
}
