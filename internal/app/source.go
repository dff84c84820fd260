package service

import (
	"context"

	intake "github.com/okian/docket/internal/domain/intake"
	simulation "github.com/okian/docket/internal/domain/simulation"
)

// CaseSource is the persistent store the docket is loaded from and new cases
// are appended to.
type CaseSource interface {
	Load(ctx context.Context) ([]intake.Record, error)
	Append(ctx context.Context, rec intake.Record) error
}

// DayRecorder is implemented by sources that keep a log of simulated days.
type DayRecorder interface {
	RecordDay(ctx context.Context, report simulation.DayReport) error
}
