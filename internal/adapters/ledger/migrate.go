package ledger

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cases (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		case_no TEXT NOT NULL UNIQUE,
		offense TEXT NOT NULL,
		vulnerable TEXT NOT NULL,
		age_of_case TEXT NOT NULL,
		bail_matter TEXT NOT NULL,
		under_trial TEXT NOT NULL,
		filed_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS simulation_days (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		advanced INTEGER NOT NULL,
		adjourned INTEGER NOT NULL,
		disposed_today TEXT NOT NULL,
		disposed_total INTEGER NOT NULL,
		active INTEGER NOT NULL,
		unassigned INTEGER NOT NULL,
		recorded_at TEXT NOT NULL,
		UNIQUE (session_id, day)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_simulation_days_session ON simulation_days (session_id, day)`,
}

// Migrate runs all schema migrations. Statements are idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
