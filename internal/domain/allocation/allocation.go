// Package allocation assigns pending cases to judges under a per-judge
// capacity, most urgent cases first.
package allocation

import (
	"fmt"
	"strings"

	docket "github.com/okian/docket/internal/domain/docket"
	model "github.com/okian/docket/internal/domain/model"
)

// DefaultCapacity is the number of cases a judge can carry at once.
const DefaultCapacity = 5

// DefaultRoster returns the standard bench: two Senior, two Mid and one Junior judge.
func DefaultRoster() []model.Judge {
	return []model.Judge{
		{Name: "Justice Sharma", Level: model.LevelSenior},
		{Name: "Justice Iyer", Level: model.LevelSenior},
		{Name: "Justice Mehta", Level: model.LevelMid},
		{Name: "Justice Rao", Level: model.LevelMid},
		{Name: "Justice Khan", Level: model.LevelJunior},
	}
}

// NewRoster validates judges and returns a copy with zero loads. Names must
// be non-empty and unique and every level must be known.
func NewRoster(judges []model.Judge) ([]model.Judge, error) {
	out := make([]model.Judge, len(judges))
	seen := make(map[string]struct{}, len(judges))
	for i, j := range judges {
		name := strings.TrimSpace(j.Name)
		if name == "" {
			return nil, fmt.Errorf("judge %d: %w", i, ErrEmptyJudgeName)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("judge %q: %w", name, ErrDuplicateJudge)
		}
		level, ok := model.ParseLevel(string(j.Level))
		if !ok {
			return nil, fmt.Errorf("judge %q level %q: %w", name, j.Level, ErrUnknownLevel)
		}
		seen[name] = struct{}{}
		out[i] = model.Judge{Name: name, Level: level}
	}
	return out, nil
}

// Eligible reports whether a judge of level may hear a case of offense.
// Heinous cases need a Senior judge, Serious cases a Senior or Mid judge,
// and Moderate cases may go to anyone.
func Eligible(offense model.Offense, level model.Level) bool {
	switch offense {
	case model.OffenseHeinous:
		return level == model.LevelSenior
	case model.OffenseSerious:
		return level == model.LevelSenior || level == model.LevelMid
	case model.OffenseModerate:
		return true
	default:
		return false
	}
}

// Result is the outcome of one allocation round.
type Result struct {
	Cases      []model.Case  // input cases in priority order, pending ones annotated
	Judges     []model.Judge // roster with final loads, in roster order
	Capacity   int
	Unassigned int // pending cases marked NoJudgeAvailable
}

// SummaryRow is one line of the judge allocation table.
type SummaryRow struct {
	Name      string
	Level     model.Level
	Load      int
	Remaining int
}

// Summary returns the judge allocation table in roster order.
func (r Result) Summary() []SummaryRow {
	out := make([]SummaryRow, len(r.Judges))
	for i, j := range r.Judges {
		out[i] = SummaryRow{Name: j.Name, Level: j.Level, Load: j.Load, Remaining: j.Remaining(r.Capacity)}
	}
	return out
}

// Allocate assigns every pending case, in priority order, to the eligible
// judge with the lowest load under capacity. Load ties go to the judge listed
// first in the roster. Cases with no eligible judge left are marked
// NoJudgeAvailable. Loads start from zero on every call. Disposed cases are
// passed through unchanged and take no capacity. Neither input is modified.
func Allocate(cases []model.Case, roster []model.Judge, capacity int) Result {
	judges := make([]model.Judge, len(roster))
	for i, j := range roster {
		judges[i] = model.Judge{Name: j.Name, Level: j.Level}
	}

	sorted := docket.SortByPriority(cases)
	unassigned := 0

	for i := range sorted {
		c := &sorted[i]
		if c.Disposed() {
			continue
		}

		best := -1
		for k := range judges {
			j := judges[k]
			if !Eligible(c.Offense, j.Level) || j.Load >= capacity {
				continue
			}
			if best < 0 || j.Load < judges[best].Load {
				best = k
			}
		}

		if best < 0 {
			c.Judge = model.NoJudgeAvailable
			unassigned++
			continue
		}
		judges[best].Load++
		c.Judge = judges[best].Name
	}

	return Result{
		Cases:      sorted,
		Judges:     judges,
		Capacity:   capacity,
		Unassigned: unassigned,
	}
}
