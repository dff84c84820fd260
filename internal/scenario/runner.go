package scenario

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	intake "github.com/okian/docket/internal/domain/intake"
	"github.com/okian/docket/pkg/logger"
)

// Run executes the complete scenario against config.BaseURL and returns the
// collected statistics. Any broken invariant stops the run with an error.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	if config.Workers < 1 {
		config.Workers = 1
	}
	log := logger.Get()

	log.Info(ctx, "starting docket scenario",
		logger.String("baseURL", config.BaseURL),
		logger.Int("cases", config.NumCases),
		logger.Int("days", config.Days),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	client := NewClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate cases
	records, err := Generate(ctx, config.NumCases, config.Seed)
	if err != nil {
		return stats, fmt.Errorf("case generation failed: %w", err)
	}
	stats.CasesGenerated = len(records)

	// Step 3: Submit cases concurrently
	submitCases(ctx, client, config, records, stats)

	// Step 4: Check the allocation the new docket produced
	alloc, err := client.Allocation(ctx)
	if err != nil {
		return stats, fmt.Errorf("allocation retrieval failed: %w", err)
	}
	if err := verifyAllocation(alloc); err != nil {
		return stats, fmt.Errorf("allocation verification failed: %w", err)
	}

	// Step 5: Run the simulated days
	if err := runDays(ctx, client, config, stats); err != nil {
		return stats, err
	}

	// Step 6: Save cases to file
	if config.OutputFile != "" {
		if err := saveCasesToFile(ctx, config.OutputFile, records); err != nil {
			log.Warn(ctx, "failed to save cases to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	log.Info(ctx, "scenario completed successfully")
	return stats, nil
}

func runDays(ctx context.Context, client *Client, config *Config, stats *Stats) error {
	log := logger.Get()

	before, err := client.Simulation(ctx)
	if err != nil {
		return fmt.Errorf("simulation retrieval failed: %w", err)
	}
	dash, err := client.Dashboard(ctx)
	if err != nil {
		return fmt.Errorf("dashboard retrieval failed: %w", err)
	}
	baseDisposed := dash.Disposed
	baseSession := before.DisposedTotal
	hearings := trackHearings(before)

	for i := 0; i < config.Days; i++ {
		report, err := client.RunDay(ctx)
		if err != nil {
			return fmt.Errorf("day %d failed: %w", before.Day+1, err)
		}
		after, err := client.Simulation(ctx)
		if err != nil {
			return fmt.Errorf("simulation retrieval failed: %w", err)
		}
		if err := verifyDay(before, after, report, hearings); err != nil {
			return fmt.Errorf("day %d verification failed: %w", report.Day, err)
		}
		alloc, err := client.Allocation(ctx)
		if err != nil {
			return fmt.Errorf("allocation retrieval failed: %w", err)
		}
		if err := verifyAllocation(alloc); err != nil {
			return fmt.Errorf("day %d allocation verification failed: %w", report.Day, err)
		}

		if config.Verbose {
			log.Info(ctx, "simulated day",
				logger.Int("day", report.Day),
				logger.Int("advanced", report.Advanced),
				logger.Int("adjourned", report.Adjourned),
				logger.Int("disposed", len(report.NewlyDisposed)),
				logger.Int("active", report.Active))
		}
		stats.DaysRun++
		before = after
		if report.Active == 0 {
			log.Info(ctx, "docket cleared", logger.Int("day", report.Day))
			break
		}
	}

	// The docket's disposed count moves in step with the session's.
	dash, err = client.Dashboard(ctx)
	if err != nil {
		return fmt.Errorf("dashboard retrieval failed: %w", err)
	}
	stats.Disposed = before.DisposedTotal - baseSession
	if dash.Disposed-baseDisposed != stats.Disposed {
		return fmt.Errorf("%w: dashboard gained %d disposed cases, session %d",
			ErrDisposed, dash.Disposed-baseDisposed, stats.Disposed)
	}
	return nil
}

// saveCasesToFile writes the generated records as a JSON array.
func saveCasesToFile(ctx context.Context, filename string, records []intake.Record) error {
	if len(records) == 0 {
		return ErrNoCases
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cases: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "cases saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final scenario statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate float64
	if stats.CasesSubmitted > 0 {
		acceptRate = float64(stats.CasesAccepted) / float64(stats.CasesSubmitted) * percentageMultiplier
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("casesGenerated", stats.CasesGenerated),
		logger.Int("casesSubmitted", stats.CasesSubmitted),
		logger.Int("casesAccepted", stats.CasesAccepted),
		logger.Int("casesDuplicate", stats.CasesDuplicate),
		logger.Int("casesRejected", stats.CasesRejected),
		logger.Int("casesFailed", stats.CasesFailed),
		logger.Int("daysRun", stats.DaysRun),
		logger.Int("disposed", stats.Disposed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("acceptRate", acceptRate))
}
