// Package types contains the view types returned by the service and
// rendered by the HTTP API and the CLI.
package types

import (
	allocation "github.com/okian/docket/internal/domain/allocation"
	model "github.com/okian/docket/internal/domain/model"
)

// CaseRow is one line of the prioritized case table.
type CaseRow struct {
	Rank              int     `json:"rank,omitempty"`
	CaseNo            string  `json:"case_no"`
	Offense           string  `json:"offense"`
	Vulnerable        string  `json:"vulnerable"`
	AgeofCase         float64 `json:"age_of_case"`
	BailMatter        bool    `json:"bail_matter"`
	UnderTrial        bool    `json:"under_trial"`
	Score             float64 `json:"score"`
	HearingsRequired  int     `json:"hearings_required"`
	HearingsCompleted int     `json:"hearings_completed"`
	HearingsLeft      int     `json:"hearings_left"`
	Status            string  `json:"status"`
	Judge             string  `json:"judge,omitempty"`
}

// JudgeRow is one line of the judge allocation table.
type JudgeRow struct {
	Name      string `json:"name"`
	Level     string `json:"level"`
	Load      int    `json:"load"`
	Remaining int    `json:"remaining"`
}

// Rejection describes a record that was not admitted to the docket.
type Rejection struct {
	Index  int    `json:"index"`
	CaseNo string `json:"case_no,omitempty"`
	Reason string `json:"reason"`
}

// Dashboard is the prioritized case table.
type Dashboard struct {
	Total    int         `json:"total"`
	Pending  int         `json:"pending"`
	Disposed int         `json:"disposed"`
	Cases    []CaseRow   `json:"cases"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

// Allocation is the current judge allocation over the active cases.
type Allocation struct {
	Capacity   int        `json:"capacity"`
	Unassigned int        `json:"unassigned"`
	Judges     []JudgeRow `json:"judges"`
	Cases      []CaseRow  `json:"cases"`
}

// Simulation is the state of the running simulation session.
type Simulation struct {
	SessionID       string    `json:"session_id"`
	Day             int       `json:"day"`
	AdjournmentRate float64   `json:"adjournment_rate"`
	DisposedTotal   int       `json:"disposed_total"`
	Active          []CaseRow `json:"active"`
}

// DayReport summarises one simulated day.
type DayReport struct {
	SessionID     string     `json:"session_id"`
	Day           int        `json:"day"`
	Advanced      int        `json:"advanced"`
	Adjourned     int        `json:"adjourned"`
	NewlyDisposed []string   `json:"newly_disposed"`
	DisposedTotal int        `json:"disposed_total"`
	Active        int        `json:"active"`
	Unassigned    int        `json:"unassigned"`
	Judges        []JudgeRow `json:"judges"`
}

// Stats is the service summary served on /stats. The docket and session
// fields stay zero until the service has started.
type Stats struct {
	Started         bool    `json:"started"`
	Judges          int     `json:"judges"`
	Capacity        int     `json:"capacity"`
	AdjournmentRate float64 `json:"adjournment_rate"`
	TotalCases      int     `json:"total_cases"`
	PendingCases    int     `json:"pending_cases"`
	DisposedCases   int     `json:"disposed_cases"`
	RejectedRecords int     `json:"rejected_records"`
	SessionID       string  `json:"session_id,omitempty"`
	Day             int     `json:"day"`
	ActiveCases     int     `json:"active_cases"`
	UnassignedCases int     `json:"unassigned_cases"`
	UptimeSeconds   int     `json:"uptime_seconds"`
}

// FromCase converts a case to its table row. rank is omitted when zero.
func FromCase(rank int, c model.Case) CaseRow {
	return CaseRow{
		Rank:              rank,
		CaseNo:            c.CaseNo,
		Offense:           string(c.Offense),
		Vulnerable:        string(c.Vulnerable),
		AgeofCase:         c.Age,
		BailMatter:        c.BailMatter,
		UnderTrial:        c.UnderTrial,
		Score:             c.Score,
		HearingsRequired:  c.HearingsRequired,
		HearingsCompleted: c.HearingsCompleted,
		HearingsLeft:      c.HearingsLeft(),
		Status:            string(c.Status),
		Judge:             c.Judge,
	}
}

// FromCases converts cases to rows ranked by their position in the slice.
func FromCases(cases []model.Case) []CaseRow {
	rows := make([]CaseRow, len(cases))
	for i, c := range cases {
		rows[i] = FromCase(i+1, c)
	}
	return rows
}

// FromSummary converts the allocator's judge summary to rows.
func FromSummary(summary []allocation.SummaryRow) []JudgeRow {
	rows := make([]JudgeRow, len(summary))
	for i, s := range summary {
		rows[i] = JudgeRow{Name: s.Name, Level: string(s.Level), Load: s.Load, Remaining: s.Remaining}
	}
	return rows
}

// FromAllocation converts an allocation result to its view.
func FromAllocation(r allocation.Result) Allocation {
	return Allocation{
		Capacity:   r.Capacity,
		Unassigned: r.Unassigned,
		Judges:     FromSummary(r.Summary()),
		Cases:      FromCases(r.Cases),
	}
}
