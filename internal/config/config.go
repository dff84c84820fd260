// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"errors"
	"fmt"
	"strings"

	allocation "github.com/okian/docket/internal/domain/allocation"
	model "github.com/okian/docket/internal/domain/model"
	scoring "github.com/okian/docket/internal/domain/scoring"
)

// Case source kinds.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Judge is a roster entry as written in configuration.
type Judge struct {
	Name  string `koanf:"name"`
	Level string `koanf:"level"`
}

// Weights mirrors scoring.Weights for configuration.
type Weights struct {
	Case       float64 `koanf:"case"`
	Vulnerable float64 `koanf:"vulnerable"`
	Age        float64 `koanf:"age"`
	Matter     float64 `koanf:"matter"`
	UnderTrial float64 `koanf:"undertrial"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects log output: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Capacity is the number of cases one judge can carry.
	Capacity int `koanf:"capacity"`

	// AdjournmentRate is the probability that a hearing is adjourned.
	AdjournmentRate float64 `koanf:"adjournment_rate"`

	// Seed seeds the simulation random source. Zero means time-based.
	Seed int64 `koanf:"seed"`

	// Judges is the allocation roster, in tie-break order.
	Judges []Judge `koanf:"judges"`

	// Source selects the case source: csv or sqlite.
	Source string `koanf:"source"`

	// DatasetPath is the CSV dataset used when Source is csv.
	DatasetPath string `koanf:"dataset_path"`

	// LedgerPath is the SQLite database used when Source is sqlite.
	LedgerPath string `koanf:"ledger_path"`

	// MaxDashboardLimit caps GET /dashboard?limit.
	MaxDashboardLimit int `koanf:"max_dashboard_limit"`

	// Weights are the scoring weights; they must sum to 100.
	Weights Weights `koanf:"weights"`

	// CaseFold treats case numbers differing only in letter case as duplicates.
	CaseFold bool `koanf:"case_fold"`
}

// New creates a Config with defaults.
func New() *Config {
	w := scoring.DefaultWeights()
	c := &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		Capacity:          allocation.DefaultCapacity,
		AdjournmentRate:   0.3,
		Source:            SourceCSV,
		DatasetPath:       "insaafdataset.csv",
		LedgerPath:        "docket.db",
		MaxDashboardLimit: 1000,
		Weights: Weights{
			Case:       w.Case,
			Vulnerable: w.Vulnerable,
			Age:        w.Age,
			Matter:     w.Matter,
			UnderTrial: w.UnderTrial,
		},
	}
	for _, j := range allocation.DefaultRoster() {
		c.Judges = append(c.Judges, Judge{Name: j.Name, Level: string(j.Level)})
	}
	return c
}

// Roster converts the configured judges to the domain roster.
func (c *Config) Roster() ([]model.Judge, error) {
	judges := make([]model.Judge, len(c.Judges))
	for i, j := range c.Judges {
		judges[i] = model.Judge{Name: j.Name, Level: model.Level(j.Level)}
	}
	roster, err := allocation.NewRoster(judges)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}
	return roster, nil
}

// ScoringWeights converts the configured weights to scoring weights.
func (c *Config) ScoringWeights() scoring.Weights {
	return scoring.Weights{
		Case:       c.Weights.Case,
		Vulnerable: c.Weights.Vulnerable,
		Age:        c.Weights.Age,
		Matter:     c.Weights.Matter,
		UnderTrial: c.Weights.UnderTrial,
	}
}

// Validate reports every invalid setting, joined.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be at least 1, got %d", c.Capacity))
	}
	if c.AdjournmentRate < 0 || c.AdjournmentRate > 1 {
		errs = append(errs, fmt.Errorf("adjournment_rate must be within [0, 1], got %v", c.AdjournmentRate))
	}
	if len(c.Judges) == 0 {
		errs = append(errs, fmt.Errorf("%w: judges must not be empty", ErrInvalidRoster))
	} else if _, err := c.Roster(); err != nil {
		errs = append(errs, err)
	}
	switch c.Source {
	case SourceCSV:
		if c.DatasetPath == "" {
			errs = append(errs, errors.New("dataset_path must not be empty"))
		}
	case SourceSQLite:
		if c.LedgerPath == "" {
			errs = append(errs, errors.New("ledger_path must not be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("%w %q", ErrUnknownSource, c.Source))
	}
	if c.MaxDashboardLimit < 1 {
		errs = append(errs, fmt.Errorf("max_dashboard_limit must be at least 1, got %d", c.MaxDashboardLimit))
	}
	if err := c.ScoringWeights().Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ParseJudges parses a compact roster such as
// "Justice A:Senior,Justice B:Mid" as used in DOCKET_JUDGES.
func ParseJudges(s string) ([]Judge, error) {
	var out []Judge
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, level, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: judge %q must be name:level", ErrInvalidRoster, part)
		}
		out = append(out, Judge{Name: strings.TrimSpace(name), Level: strings.TrimSpace(level)})
	}
	return out, nil
}
