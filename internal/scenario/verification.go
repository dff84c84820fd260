package scenario

import (
	"fmt"

	allocation "github.com/okian/docket/internal/domain/allocation"
	model "github.com/okian/docket/internal/domain/model"
)

// verifyAllocation checks that no judge is over capacity, that every
// assignment respects seniority and that per-judge loads match the cases.
func verifyAllocation(alloc Allocation) error {
	levels := make(map[string]model.Level, len(alloc.Judges))
	for _, j := range alloc.Judges {
		if j.Load > alloc.Capacity {
			return fmt.Errorf("%w: %s has %d cases, capacity %d", ErrCapacity, j.Name, j.Load, alloc.Capacity)
		}
		levels[j.Name] = model.Level(j.Level)
	}

	loads := make(map[string]int, len(alloc.Judges))
	unassigned := 0
	for _, c := range alloc.Cases {
		if c.Status == string(model.StatusDisposed) {
			continue
		}
		if c.Judge == model.NoJudgeAvailable {
			unassigned++
			continue
		}
		level, ok := levels[c.Judge]
		if !ok || !allocation.Eligible(model.Offense(c.Offense), level) {
			return fmt.Errorf("%w: %s (%s) assigned to %s", ErrEligibility, c.CaseNo, c.Offense, c.Judge)
		}
		loads[c.Judge]++
	}

	for _, j := range alloc.Judges {
		if loads[j.Name] != j.Load {
			return fmt.Errorf("%w: %s reports load %d but holds %d cases", ErrCapacity, j.Name, j.Load, loads[j.Name])
		}
	}
	if unassigned != alloc.Unassigned {
		return fmt.Errorf("%w: %d unassigned reported, %d found", ErrCapacity, alloc.Unassigned, unassigned)
	}
	return nil
}

// verifyDay checks a day report against the session before and after it.
// hearings maps case number to completed hearings as of the previous day
// and is updated in place.
func verifyDay(before, after Simulation, report DayReport, hearings map[string]int) error {
	if report.Day != before.Day+1 || after.Day != report.Day {
		return fmt.Errorf("%w: day %d after day %d", ErrDisposed, report.Day, before.Day)
	}
	if report.DisposedTotal != before.DisposedTotal+len(report.NewlyDisposed) {
		return fmt.Errorf("%w: total %d, was %d plus %d today",
			ErrDisposed, report.DisposedTotal, before.DisposedTotal, len(report.NewlyDisposed))
	}
	if after.DisposedTotal != report.DisposedTotal {
		return fmt.Errorf("%w: session reports %d, day report %d", ErrDisposed, after.DisposedTotal, report.DisposedTotal)
	}
	if len(after.Active) != report.Active {
		return fmt.Errorf("%w: %d active cases listed, %d reported", ErrDisposed, len(after.Active), report.Active)
	}

	for _, caseNo := range report.NewlyDisposed {
		delete(hearings, caseNo)
	}
	for _, c := range after.Active {
		if prev, ok := hearings[c.CaseNo]; ok && c.HearingsCompleted < prev {
			return fmt.Errorf("%w: %s went from %d to %d", ErrHearings, c.CaseNo, prev, c.HearingsCompleted)
		}
		if c.HearingsCompleted >= c.HearingsRequired {
			return fmt.Errorf("%w: %s is still active with %d/%d hearings",
				ErrHearings, c.CaseNo, c.HearingsCompleted, c.HearingsRequired)
		}
		hearings[c.CaseNo] = c.HearingsCompleted
	}
	return nil
}

// trackHearings seeds the hearing map from the session's active cases.
func trackHearings(sim Simulation) map[string]int {
	out := make(map[string]int, len(sim.Active))
	for _, c := range sim.Active {
		out[c.CaseNo] = c.HearingsCompleted
	}
	return out
}
