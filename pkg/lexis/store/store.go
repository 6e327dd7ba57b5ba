package store

import (
	"context"
	"time"

	"github.com/cognicore/lexis/pkg/lexis/report"
)

// Store persists analysis reports
type Store interface {
	Close() error

	SaveReport(ctx context.Context, r *report.Report) error
	LoadReport(ctx context.Context, id string) (*report.Report, bool, error)
	Runs(ctx context.Context) ([]Run, error)
}

// Run summarizes a stored report
type Run struct {
	ID        string
	Input     string
	Window    int
	CreatedAt time.Time
	Tokens    int // total counted tokens, 0 when frequencies were not computed
	Distinct  int
	Pairs     int
}
