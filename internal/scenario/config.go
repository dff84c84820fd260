// Package scenario drives a running docket server end to end: it files
// random cases, runs simulated days and checks what the API reports back.
package scenario

import (
	"time"

	"github.com/okian/docket/internal/domain/types"
)

// Config holds configuration for a scenario run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumCases   int           // Number of cases to generate
	Days       int           // Number of simulated days to run
	Workers    int           // Number of concurrent submitters
	Seed       uint64        // Seed for case generation
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated cases
	Verbose    bool
}

// Stats holds scenario statistics.
type Stats struct {
	CasesGenerated int
	CasesSubmitted int
	CasesAccepted  int
	CasesDuplicate int
	CasesRejected  int
	CasesFailed    int
	DaysRun        int
	Disposed       int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// Response shapes read back from the API.
type (
	CaseRow    = types.CaseRow
	Dashboard  = types.Dashboard
	Allocation = types.Allocation
	Simulation = types.Simulation
	DayReport  = types.DayReport
)

// Submission outcomes.
const (
	outcomeAccepted  = "accepted"
	outcomeDuplicate = "duplicate"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

const (
	workerChannelMultiplier = 2
	directoryPermission     = 0750
	percentageMultiplier    = 100
)
