package config

import (
	"github.com/cognicore/lexis/pkg/lexis/counts"
	"github.com/cognicore/lexis/pkg/lexis/source"
)

// Components holds the analysis inputs derived from a Config
type Components struct {
	Filter        counts.Predicate // nil when unbounded
	Window        int
	SourceOptions []source.Option
}

// Components validates the config and builds the pieces the analyzers take
func (c Config) Components() (*Components, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &Components{
		Filter:        c.Filter.Predicate(),
		Window:        c.Window,
		SourceOptions: []source.Option{source.WithEncoding(c.Encoding)},
	}, nil
}

// Predicate returns the token filter, or nil when no bound is set
func (f Filter) Predicate() counts.Predicate {
	var preds []counts.Predicate
	if f.MinLength > 0 {
		preds = append(preds, counts.MinLength(f.MinLength))
	}
	if f.MaxLength > 0 {
		preds = append(preds, counts.MaxLength(f.MaxLength))
	}
	return counts.All(preds...)
}
