package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/docket/internal/domain/types"
)

var caseHeaders = []string{"#", "CASE", "OFFENSE", "VULNERABLE", "AGE", "SCORE", "HEARINGS", "STATUS", "JUDGE"}

func caseRows(cases []types.CaseRow) [][]string {
	rows := make([][]string, len(cases))
	for i, c := range cases {
		rows[i] = []string{
			strconv.Itoa(c.Rank),
			c.CaseNo,
			c.Offense,
			c.Vulnerable,
			strconv.FormatFloat(c.AgeofCase, 'f', -1, 64),
			fmt.Sprintf("%.2f", c.Score),
			fmt.Sprintf("%d/%d", c.HearingsCompleted, c.HearingsRequired),
			StatusPill(c.Status),
			JudgeLabel(c.Judge),
		}
	}
	return rows
}

// FormatCases renders the prioritized case table.
func FormatCases(cases []types.CaseRow) string {
	if len(cases) == 0 {
		return StyleDim.Render("No cases.") + "\n"
	}
	return RenderTable(caseHeaders, caseRows(cases))
}

// FormatJudges renders the judge allocation table.
func FormatJudges(judges []types.JudgeRow) string {
	rows := make([][]string, len(judges))
	for i, j := range judges {
		remaining := strconv.Itoa(j.Remaining)
		if j.Remaining == 0 {
			remaining = StyleRed.Render(remaining)
		}
		rows[i] = []string{j.Name, j.Level, strconv.Itoa(j.Load), remaining}
	}
	return RenderTable([]string{"JUDGE", "LEVEL", "LOAD", "REMAINING"}, rows)
}

// FormatDashboard renders the dashboard with its counters and any rejected
// records.
func FormatDashboard(d types.Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  total %d  pending %d  disposed %d\n\n",
		StyleBold.Render("Docket"), d.Total, d.Pending, d.Disposed)
	b.WriteString(FormatCases(d.Cases))
	if len(d.Rejected) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleRed.Render(fmt.Sprintf("Rejected records (%d)", len(d.Rejected))))
		b.WriteString("\n")
		rows := make([][]string, len(d.Rejected))
		for i, r := range d.Rejected {
			rows[i] = []string{strconv.Itoa(r.Index), r.CaseNo, r.Reason}
		}
		b.WriteString(RenderTable([]string{"ROW", "CASE", "REASON"}, rows))
	}
	return b.String()
}

// FormatAllocation renders the judge table followed by the annotated cases.
func FormatAllocation(a types.Allocation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  capacity %d  unassigned %d\n\n",
		StyleBold.Render("Judge Allocation"), a.Capacity, a.Unassigned)
	b.WriteString(FormatJudges(a.Judges))
	b.WriteString("\n")
	b.WriteString(FormatCases(a.Cases))
	return b.String()
}

// FormatDayReport renders the one-line summary of a simulated day.
func FormatDayReport(r types.DayReport) string {
	line := fmt.Sprintf("Day %d  advanced %d  adjourned %d  disposed today %d  disposed total %d  active %d",
		r.Day, r.Advanced, r.Adjourned, len(r.NewlyDisposed), r.DisposedTotal, r.Active)
	if r.Unassigned > 0 {
		line += "  " + StyleRed.Render(fmt.Sprintf("unassigned %d", r.Unassigned))
	}
	if len(r.NewlyDisposed) > 0 {
		line += "\n  " + StyleGreen.Render("disposed: "+strings.Join(r.NewlyDisposed, ", "))
	}
	return line + "\n"
}

// FormatSimulation renders the session header and its active cases.
func FormatSimulation(s types.Simulation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  session %s  day %d  disposed %d  active %d\n\n",
		StyleBold.Render("Simulation"), s.SessionID, s.Day, s.DisposedTotal, len(s.Active))
	b.WriteString(FormatCases(s.Active))
	return b.String()
}

// FormatDayLog renders the logged days of a session as a table.
func FormatDayLog(sessionID string, days []types.DayReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  session %s  days %d\n\n", StyleBold.Render("Day Log"), sessionID, len(days))
	rows := make([][]string, len(days))
	for i, d := range days {
		rows[i] = []string{
			strconv.Itoa(d.Day),
			strconv.Itoa(d.Advanced),
			strconv.Itoa(d.Adjourned),
			strings.Join(d.NewlyDisposed, " "),
			strconv.Itoa(d.DisposedTotal),
			strconv.Itoa(d.Active),
			strconv.Itoa(d.Unassigned),
		}
	}
	b.WriteString(RenderTable([]string{"DAY", "ADVANCED", "ADJOURNED", "DISPOSED", "TOTAL", "ACTIVE", "UNASSIGNED"}, rows))
	return b.String()
}
