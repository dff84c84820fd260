package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	docket "github.com/okian/docket/internal/domain/docket"
	intake "github.com/okian/docket/internal/domain/intake"
	simulation "github.com/okian/docket/internal/domain/simulation"
)

// Ledger implements the case source and day recorder on SQLite.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// New wraps an open, migrated database.
func New(db *sql.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// Open opens (and migrates) the database at path.
func Open(path string) (*Ledger, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Load returns every filed case record in filing order.
func (l *Ledger) Load(ctx context.Context) ([]intake.Record, error) {
	query := `SELECT case_no, offense, vulnerable, age_of_case, bail_matter, under_trial
		FROM cases ORDER BY seq`
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing cases: %w", err)
	}
	defer rows.Close()

	var out []intake.Record
	for rows.Next() {
		var caseNo, offense, vulnerable, age, bail, trial string
		if err := rows.Scan(&caseNo, &offense, &vulnerable, &age, &bail, &trial); err != nil {
			return nil, fmt.Errorf("scanning case: %w", err)
		}
		out = append(out, intake.Record{
			intake.FieldCaseNo:     caseNo,
			intake.FieldOffense:    offense,
			intake.FieldVulnerable: vulnerable,
			intake.FieldAge:        age,
			intake.FieldBailMatter: bail,
			intake.FieldUnderTrial: trial,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cases: %w", err)
	}
	return out, nil
}

// Append files rec. A case number that is already filed returns an error
// wrapping docket.ErrDuplicateCase.
func (l *Ledger) Append(ctx context.Context, rec intake.Record) error {
	query := `INSERT INTO cases (case_no, offense, vulnerable, age_of_case, bail_matter, under_trial, filed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := l.db.ExecContext(ctx, query,
		rec.Get(intake.FieldCaseNo),
		rec.Get(intake.FieldOffense),
		rec.Get(intake.FieldVulnerable),
		rec.Get(intake.FieldAge),
		rec.Get(intake.FieldBailMatter),
		rec.Get(intake.FieldUnderTrial),
		l.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("inserting case %s: %w", rec.Get(intake.FieldCaseNo), docket.ErrDuplicateCase)
		}
		return fmt.Errorf("inserting case: %w", err)
	}
	return nil
}

// Day is one row of the simulation day log.
type Day struct {
	SessionID     string
	Day           int
	Advanced      int
	Adjourned     int
	DisposedToday []string
	DisposedTotal int
	Active        int
	Unassigned    int
	RecordedAt    time.Time
}

// RecordDay appends a simulated day to the log.
func (l *Ledger) RecordDay(ctx context.Context, r simulation.DayReport) error {
	disposed := r.NewlyDisposed
	if disposed == nil {
		disposed = []string{}
	}
	encoded, err := json.Marshal(disposed)
	if err != nil {
		return fmt.Errorf("encoding disposed cases: %w", err)
	}

	query := `INSERT INTO simulation_days
		(session_id, day, advanced, adjourned, disposed_today, disposed_total, active, unassigned, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = l.db.ExecContext(ctx, query,
		r.SessionID,
		r.Day,
		r.Advanced,
		r.Adjourned,
		string(encoded),
		r.DisposedTotal,
		len(r.Allocation.Cases),
		r.Allocation.Unassigned,
		l.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting simulation day: %w", err)
	}
	return nil
}

// Days returns the logged days of a session in day order.
func (l *Ledger) Days(ctx context.Context, sessionID string) ([]Day, error) {
	query := `SELECT session_id, day, advanced, adjourned, disposed_today, disposed_total, active, unassigned, recorded_at
		FROM simulation_days WHERE session_id = ? ORDER BY day`
	rows, err := l.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing simulation days: %w", err)
	}
	defer rows.Close()

	var out []Day
	for rows.Next() {
		var d Day
		var disposed, recordedAt string
		if err := rows.Scan(&d.SessionID, &d.Day, &d.Advanced, &d.Adjourned, &disposed,
			&d.DisposedTotal, &d.Active, &d.Unassigned, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning simulation day: %w", err)
		}
		if err := json.Unmarshal([]byte(disposed), &d.DisposedToday); err != nil {
			return nil, fmt.Errorf("decoding disposed cases: %w", err)
		}
		if d.RecordedAt, err = time.Parse(time.RFC3339, recordedAt); err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating simulation days: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("simulation days for %s: %w", sessionID, ErrNotFound)
	}
	return out, nil
}

// LatestSession returns the session that logged the most recent day.
func (l *Ledger) LatestSession(ctx context.Context) (string, error) {
	var id string
	err := l.db.QueryRowContext(ctx, `SELECT session_id FROM simulation_days ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("latest session: %w", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("querying latest session: %w", err)
	}
	return id, nil
}
