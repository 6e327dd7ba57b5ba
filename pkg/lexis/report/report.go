// Package report collects the results of one analysis run and renders them.
package report

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/lexis/pkg/lexis/cooccur"
	"github.com/cognicore/lexis/pkg/lexis/counts"
	"github.com/cognicore/lexis/pkg/lexis/source"
)

// Report holds the results of one run. Sections that were not requested
// are nil.
type Report struct {
	ID          string
	Input       string
	Window      int
	CreatedAt   time.Time
	Frequencies counts.Frequencies
	Unique      counts.Set
	Pairs       cooccur.PairSet
}

// Analyses selects which results a run computes
type Analyses struct {
	Frequencies bool
	Unique      bool
	Pairs       bool
}

// AllAnalyses selects every analysis
func AllAnalyses() Analyses {
	return Analyses{Frequencies: true, Unique: true, Pairs: true}
}

// Request describes one run
type Request struct {
	Input    string // label recorded in the report
	Source   source.Source
	Filter   counts.Predicate
	Window   int
	Analyses Analyses
}

// NewID returns a new time-ordered run identifier
func NewID() string {
	return ulid.Make().String()
}

// Run computes the requested analyses. Each analysis makes its own pass over
// the source, so a single-pass source (a stdin reader) should be buffered by
// the caller when more than one analysis is selected.
func Run(req Request) (*Report, error) {
	r := &Report{
		ID:        NewID(),
		Input:     req.Input,
		Window:    req.Window,
		CreatedAt: time.Now().UTC(),
	}

	if req.Analyses.Pairs {
		if err := cooccur.ValidateWindow(req.Window); err != nil {
			return nil, err
		}
	}

	if req.Analyses.Frequencies {
		freq, err := counts.WordFrequency(req.Source, req.Filter)
		if err != nil {
			return nil, err
		}
		r.Frequencies = freq
	}

	if req.Analyses.Unique {
		set, err := counts.UniqueWords(req.Source)
		if err != nil {
			return nil, err
		}
		r.Unique = set
	}

	if req.Analyses.Pairs {
		pairs, err := cooccur.Pairs(req.Source, req.Window)
		if err != nil {
			return nil, err
		}
		r.Pairs = pairs
	}

	return r, nil
}
