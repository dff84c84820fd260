// Package model contains domain models passed between layers.
package model

import (
	"strings"
)

// Offense is the severity class of a case.
type Offense string

const (
	OffenseHeinous  Offense = "Heinous"
	OffenseSerious  Offense = "Serious"
	OffenseModerate Offense = "Moderate"
)

// Offenses lists every known offense class, most severe first.
var Offenses = []Offense{OffenseHeinous, OffenseSerious, OffenseModerate}

// ParseOffense matches s against the known offense classes, ignoring case.
func ParseOffense(s string) (Offense, bool) {
	for _, o := range Offenses {
		if strings.EqualFold(strings.TrimSpace(s), string(o)) {
			return o, true
		}
	}
	return "", false
}

// HearingsRequired is the number of hearings a case of this class needs
// before it can be disposed. Unknown classes need none.
func (o Offense) HearingsRequired() int {
	switch o {
	case OffenseHeinous:
		return 5
	case OffenseSerious:
		return 3
	case OffenseModerate:
		return 2
	default:
		return 0
	}
}

// Vulnerable names the vulnerable party involved in a case, if any.
type Vulnerable string

const (
	VulnerableNone           Vulnerable = "None"
	VulnerableWoman          Vulnerable = "Woman"
	VulnerableChild          Vulnerable = "Child"
	VulnerableSeniorCitizen  Vulnerable = "SeniorCitizen"
	VulnerableDisabledPerson Vulnerable = "DisabledPerson"
)

// VulnerableParties lists every known vulnerable party value.
var VulnerableParties = []Vulnerable{
	VulnerableNone,
	VulnerableWoman,
	VulnerableChild,
	VulnerableSeniorCitizen,
	VulnerableDisabledPerson,
}

// ParseVulnerable accepts the canonical spellings as well as the spaced form
// used by the intake form ("Senior Citizen", "Disabled Person").
func ParseVulnerable(s string) (Vulnerable, bool) {
	compact := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	for _, v := range VulnerableParties {
		if strings.EqualFold(compact, string(v)) {
			return v, true
		}
	}
	return "", false
}

// Status is the lifecycle state of a case. It only moves Pending -> Disposed.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusDisposed Status = "Disposed"
)

// NoJudgeAvailable is written to Case.Judge when no eligible judge had capacity.
const NoJudgeAvailable = "No Judge Available"

// Case is a single court case together with its derived fields.
type Case struct {
	CaseNo     string     // unique case number
	Offense    Offense    // severity class
	Vulnerable Vulnerable // vulnerable party
	Age        float64    // years since filing
	BailMatter bool
	UnderTrial bool

	Score             float64 // priority score, 0-100, two decimals
	HearingsRequired  int
	HearingsCompleted int
	Status            Status
	Judge             string // assigned judge name or NoJudgeAvailable
	Seq               uint64 // insertion order, used to break score ties
}

// Disposed reports whether the case has been closed.
func (c Case) Disposed() bool {
	return c.Status == StatusDisposed
}

// HearingsLeft returns how many hearings remain before disposal.
func (c Case) HearingsLeft() int {
	if left := c.HearingsRequired - c.HearingsCompleted; left > 0 {
		return left
	}
	return 0
}
