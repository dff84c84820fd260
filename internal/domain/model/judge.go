package model

import "strings"

// Level is a judge's seniority.
type Level string

const (
	LevelSenior Level = "Senior"
	LevelMid    Level = "Mid"
	LevelJunior Level = "Junior"
)

// Levels lists every known seniority level, most senior first.
var Levels = []Level{LevelSenior, LevelMid, LevelJunior}

// ParseLevel matches s against the known levels, ignoring case.
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, true
		}
	}
	return "", false
}

// Judge is a member of the allocation roster.
type Judge struct {
	Name  string
	Level Level
	Load  int // cases assigned in the current allocation round
}

// Remaining returns the free slots left under capacity.
func (j Judge) Remaining(capacity int) int {
	if r := capacity - j.Load; r > 0 {
		return r
	}
	return 0
}
