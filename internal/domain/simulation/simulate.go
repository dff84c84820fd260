// Package simulation advances the docket one court day at a time.
package simulation

import (
	model "github.com/okian/docket/internal/domain/model"
)

// DefaultAdjournmentRate is the chance that a scheduled hearing is adjourned.
const DefaultAdjournmentRate = 0.3

// Source yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// SimulateDay returns a new slice holding the cases after one court day.
// Disposed cases are copied unchanged. Every pending case draws one value
// from rng in slice order: below rate the hearing is adjourned and nothing
// changes, otherwise one hearing is completed and the case is disposed once
// it has completed every required hearing. The input is not modified.
func SimulateDay(cases []model.Case, rate float64, rng Source) []model.Case {
	out := make([]model.Case, len(cases))
	for i, c := range cases {
		out[i] = c
		if c.Disposed() {
			continue
		}
		if rng.Float64() < rate {
			continue
		}
		out[i].HearingsCompleted++
		if out[i].HearingsCompleted >= out[i].HearingsRequired {
			out[i].Status = model.StatusDisposed
		}
	}
	return out
}
