// Package scoring computes the priority score of a case.
package scoring

import (
	"fmt"
	"math"

	model "github.com/okian/docket/internal/domain/model"
)

// Default weights, in points. They sum to maxScoreValue.
const (
	defaultCaseWeight       = 25
	defaultVulnerableWeight = 15
	defaultAgeWeight        = 20
	defaultMatterWeight     = 20
	defaultUnderTrialWeight = 20
	maxScoreValue           = 100
	weightTolerance         = 1e-9
)

// Weights are the points each factor contributes at full value.
type Weights struct {
	Case       float64
	Vulnerable float64
	Age        float64
	Matter     float64
	UnderTrial float64
}

// DefaultWeights returns the standard 25/15/20/20/20 split.
func DefaultWeights() Weights {
	return Weights{
		Case:       defaultCaseWeight,
		Vulnerable: defaultVulnerableWeight,
		Age:        defaultAgeWeight,
		Matter:     defaultMatterWeight,
		UnderTrial: defaultUnderTrialWeight,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Case + w.Vulnerable + w.Age + w.Matter + w.UnderTrial
}

// Validate checks that no weight is negative and that they sum to 100, which
// keeps every score inside [0, 100].
func (w Weights) Validate() error {
	for _, v := range []float64{w.Case, w.Vulnerable, w.Age, w.Matter, w.UnderTrial} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %v", ErrNegativeWeight, v)
		}
	}
	if math.Abs(w.Sum()-maxScoreValue) > weightTolerance {
		return fmt.Errorf("%w: got %v", ErrWeightSum, w.Sum())
	}
	return nil
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights replaces the default weights. Invalid weights are ignored.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		if w.Validate() == nil {
			s.weights = w
		}
	}
}

// Breakdown holds the normalized factor values behind a score.
type Breakdown struct {
	CaseValue       float64
	VulnerableValue float64
	AgeValue        float64
	MatterValue     float64
	UnderTrialValue float64
	Score           float64
}

// Scorer computes priority scores. It is stateless after construction and
// safe for concurrent use.
type Scorer struct {
	weights Weights
}

// New creates a scorer with configuration options.
func New(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights()}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Weights returns the weights in use.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score returns the priority score of c rounded to two decimals.
func (s *Scorer) Score(c model.Case) (float64, error) {
	b, err := s.Breakdown(c)
	if err != nil {
		return 0, err
	}
	return b.Score, nil
}

// Breakdown returns the factor values and the resulting score for c.
func (s *Scorer) Breakdown(c model.Case) (Breakdown, error) {
	caseValue, ok := CaseValue(c.Offense)
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: %q", ErrUnknownOffense, c.Offense)
	}
	if math.IsNaN(c.Age) || math.IsInf(c.Age, 0) || c.Age < 0 {
		return Breakdown{}, fmt.Errorf("%w: %v", ErrInvalidAge, c.Age)
	}

	b := Breakdown{
		CaseValue:       caseValue,
		VulnerableValue: VulnerableValue(c.Vulnerable),
		AgeValue:        AgeValue(c.Age),
		MatterValue:     flagValue(c.BailMatter),
		UnderTrialValue: flagValue(c.UnderTrial),
	}

	w := s.weights
	total := w.Case*b.CaseValue +
		w.Vulnerable*b.VulnerableValue +
		w.Age*b.AgeValue +
		w.Matter*b.MatterValue +
		w.UnderTrial*b.UnderTrialValue
	b.Score = Round2(total)

	return b, nil
}

// CaseValue maps an offense to its severity value.
func CaseValue(o model.Offense) (float64, bool) {
	switch o {
	case model.OffenseHeinous:
		return 1.0, true
	case model.OffenseSerious:
		return 0.8, true
	case model.OffenseModerate:
		return 0.4, true
	default:
		return 0, false
	}
}

// VulnerableValue is 0 when no vulnerable party is involved and 1 otherwise.
func VulnerableValue(v model.Vulnerable) float64 {
	if v == model.VulnerableNone {
		return 0
	}
	return 1
}

// AgeValue buckets a case age in years. Thresholds apply to the numeric
// value, so 4.5 falls in the (4, 8] bucket.
func AgeValue(age float64) float64 {
	switch {
	case age <= 4:
		return 0.2
	case age <= 8:
		return 0.5
	case age <= 15:
		return 0.8
	default:
		return 1.0
	}
}

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func flagValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
