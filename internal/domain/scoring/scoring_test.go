package scoring_test

import (
	"errors"
	"math"
	"testing"

	model "github.com/okian/docket/internal/domain/model"
	scoring "github.com/okian/docket/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScorer_Score(t *testing.T) {
	Convey("Given a scorer with default weights", t, func() {
		scorer := scoring.New()

		Convey("When scoring a heinous ten-year-old case with no flags", func() {
			c := model.Case{
				Offense:    model.OffenseHeinous,
				Vulnerable: model.VulnerableNone,
				Age:        10,
			}

			Convey("Then the score is 41", func() {
				score, err := scorer.Score(c)
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 41.00)
			})
		})

		Convey("When scoring a serious case involving a woman with both flags set", func() {
			c := model.Case{
				Offense:    model.OffenseSerious,
				Vulnerable: model.VulnerableWoman,
				Age:        2,
				BailMatter: true,
				UnderTrial: true,
			}

			Convey("Then the score is 79", func() {
				score, err := scorer.Score(c)
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 79.00)
			})
		})

		Convey("When scoring the most and least urgent cases", func() {
			high := model.Case{Offense: model.OffenseHeinous, Vulnerable: model.VulnerableChild, Age: 30, BailMatter: true, UnderTrial: true}
			low := model.Case{Offense: model.OffenseModerate, Vulnerable: model.VulnerableNone, Age: 0}

			Convey("Then the scores bound the range", func() {
				hs, err := scorer.Score(high)
				So(err, ShouldBeNil)
				So(hs, ShouldEqual, 100.00)

				ls, err := scorer.Score(low)
				So(err, ShouldBeNil)
				So(ls, ShouldEqual, 14.00)
			})
		})

		Convey("When scoring the same case twice", func() {
			c := model.Case{Offense: model.OffenseSerious, Vulnerable: model.VulnerableDisabledPerson, Age: 7.3, UnderTrial: true}
			a, errA := scorer.Score(c)
			b, errB := scorer.Score(c)

			Convey("Then the results are identical and have two decimals", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldEqual, b)
				So(math.Round(a*100)/100, ShouldEqual, a)
			})
		})

		Convey("When scoring an unknown offense", func() {
			_, err := scorer.Score(model.Case{Offense: "Petty"})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, scoring.ErrUnknownOffense), ShouldBeTrue)
			})
		})

		Convey("When scoring an invalid age", func() {
			_, errNeg := scorer.Score(model.Case{Offense: model.OffenseModerate, Age: -1})
			_, errNaN := scorer.Score(model.Case{Offense: model.OffenseModerate, Age: math.NaN()})

			Convey("Then it is rejected", func() {
				So(errors.Is(errNeg, scoring.ErrInvalidAge), ShouldBeTrue)
				So(errors.Is(errNaN, scoring.ErrInvalidAge), ShouldBeTrue)
			})
		})
	})
}

func TestAgeValue(t *testing.T) {
	Convey("Given case ages around the bucket boundaries", t, func() {
		cases := []struct {
			age  float64
			want float64
		}{
			{0, 0.2},
			{4, 0.2},
			{4.5, 0.5},
			{8, 0.5},
			{8.01, 0.8},
			{15, 0.8},
			{15.5, 1.0},
			{30, 1.0},
		}

		for _, tc := range cases {
			So(scoring.AgeValue(tc.age), ShouldEqual, tc.want)
		}
	})
}

func TestBreakdown(t *testing.T) {
	Convey("Given a scorer", t, func() {
		scorer := scoring.New()
		c := model.Case{Offense: model.OffenseSerious, Vulnerable: model.VulnerableWoman, Age: 2, BailMatter: true}

		b, err := scorer.Breakdown(c)

		Convey("Then the factor values are exposed", func() {
			So(err, ShouldBeNil)
			So(b.CaseValue, ShouldEqual, 0.8)
			So(b.VulnerableValue, ShouldEqual, 1)
			So(b.AgeValue, ShouldEqual, 0.2)
			So(b.MatterValue, ShouldEqual, 1)
			So(b.UnderTrialValue, ShouldEqual, 0)
			So(b.Score, ShouldEqual, 59.00)
		})
	})
}

func TestWithWeights(t *testing.T) {
	Convey("Given custom weights that sum to 100", t, func() {
		w := scoring.Weights{Case: 40, Vulnerable: 10, Age: 10, Matter: 20, UnderTrial: 20}
		scorer := scoring.New(scoring.WithWeights(w))

		Convey("Then they are used", func() {
			So(scorer.Weights(), ShouldResemble, w)

			score, err := scorer.Score(model.Case{Offense: model.OffenseHeinous, Vulnerable: model.VulnerableNone, Age: 1})
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 42.00)
		})
	})

	Convey("Given weights that do not sum to 100", t, func() {
		w := scoring.Weights{Case: 50, Vulnerable: 50, Age: 50}

		Convey("Then validation fails and the scorer keeps the defaults", func() {
			So(errors.Is(w.Validate(), scoring.ErrWeightSum), ShouldBeTrue)
			So(scoring.New(scoring.WithWeights(w)).Weights(), ShouldResemble, scoring.DefaultWeights())
		})
	})

	Convey("Given a negative weight", t, func() {
		w := scoring.Weights{Case: 120, Vulnerable: -20}

		Convey("Then validation fails", func() {
			So(errors.Is(w.Validate(), scoring.ErrNegativeWeight), ShouldBeTrue)
		})
	})
}
