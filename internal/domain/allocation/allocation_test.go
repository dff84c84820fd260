package allocation_test

import (
	"errors"
	"fmt"
	"testing"

	allocation "github.com/okian/docket/internal/domain/allocation"
	model "github.com/okian/docket/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func cases(n int, offense model.Offense) []model.Case {
	out := make([]model.Case, n)
	for i := range out {
		out[i] = model.Case{
			CaseNo:           fmt.Sprintf("%s-%d", offense, i),
			Offense:          offense,
			Score:            float64(100 - i),
			Seq:              uint64(i),
			Status:           model.StatusPending,
			HearingsRequired: offense.HearingsRequired(),
		}
	}
	return out
}

func seniors() []model.Judge {
	return []model.Judge{
		{Name: "S1", Level: model.LevelSenior},
		{Name: "S2", Level: model.LevelSenior},
	}
}

func TestAllocate(t *testing.T) {
	Convey("Given six heinous cases and two senior judges with capacity five", t, func() {
		res := allocation.Allocate(cases(6, model.OffenseHeinous), seniors(), 5)

		Convey("Then every case is assigned and loads are balanced", func() {
			So(res.Unassigned, ShouldEqual, 0)
			So(res.Judges[0].Load, ShouldEqual, 3)
			So(res.Judges[1].Load, ShouldEqual, 3)
			for _, c := range res.Cases {
				So(c.Judge, ShouldNotEqual, model.NoJudgeAvailable)
			}
		})

		Convey("And load ties go to the judge listed first", func() {
			So(res.Cases[0].Judge, ShouldEqual, "S1")
			So(res.Cases[1].Judge, ShouldEqual, "S2")
			So(res.Cases[2].Judge, ShouldEqual, "S1")
		})
	})

	Convey("Given eleven heinous cases and two senior judges with capacity five", t, func() {
		res := allocation.Allocate(cases(11, model.OffenseHeinous), seniors(), 5)

		Convey("Then ten are assigned and the least urgent one is not", func() {
			So(res.Judges[0].Load, ShouldEqual, 5)
			So(res.Judges[1].Load, ShouldEqual, 5)
			So(res.Unassigned, ShouldEqual, 1)
			So(res.Cases[10].Judge, ShouldEqual, model.NoJudgeAvailable)
		})

		Convey("And the summary shows no remaining capacity", func() {
			summary := res.Summary()
			So(summary, ShouldHaveLength, 2)
			So(summary[0], ShouldResemble, allocation.SummaryRow{Name: "S1", Level: model.LevelSenior, Load: 5, Remaining: 0})
		})
	})

	Convey("Given the default roster and a mix of offenses", t, func() {
		var in []model.Case
		in = append(in, cases(3, model.OffenseHeinous)...)
		in = append(in, cases(4, model.OffenseSerious)...)
		in = append(in, cases(4, model.OffenseModerate)...)

		roster := allocation.DefaultRoster()
		levels := map[string]model.Level{}
		for _, j := range roster {
			levels[j.Name] = j.Level
		}

		res := allocation.Allocate(in, roster, 2)

		Convey("Then every assignment respects eligibility", func() {
			for _, c := range res.Cases {
				if c.Judge == model.NoJudgeAvailable {
					continue
				}
				So(allocation.Eligible(c.Offense, levels[c.Judge]), ShouldBeTrue)
			}
		})

		Convey("And no judge exceeds capacity", func() {
			total := 0
			for _, j := range res.Judges {
				So(j.Load, ShouldBeLessThanOrEqualTo, 2)
				total += j.Load
			}
			So(total+res.Unassigned, ShouldEqual, len(in))
		})

		Convey("And the results come back in priority order", func() {
			for i := 1; i < len(res.Cases); i++ {
				So(res.Cases[i-1].Score, ShouldBeGreaterThanOrEqualTo, res.Cases[i].Score)
			}
		})
	})

	Convey("Given disposed cases in the input", t, func() {
		in := cases(2, model.OffenseModerate)
		in[0].Status = model.StatusDisposed
		in[0].Judge = "Old"

		res := allocation.Allocate(in, seniors(), 1)

		Convey("Then they take no capacity and keep their judge", func() {
			So(res.Cases[0].Judge, ShouldEqual, "Old")
			So(res.Cases[1].Judge, ShouldEqual, "S1")
			So(res.Judges[0].Load+res.Judges[1].Load, ShouldEqual, 1)
		})
	})

	Convey("Given a roster carrying stale loads", t, func() {
		roster := seniors()
		roster[0].Load = 5

		res := allocation.Allocate(cases(1, model.OffenseHeinous), roster, 5)

		Convey("Then loads restart from zero and the input roster is untouched", func() {
			So(res.Cases[0].Judge, ShouldEqual, "S1")
			So(roster[0].Load, ShouldEqual, 5)
		})
	})

	Convey("Given zero capacity", t, func() {
		res := allocation.Allocate(cases(2, model.OffenseModerate), seniors(), 0)

		So(res.Unassigned, ShouldEqual, 2)
	})

	Convey("Given no judges at all", t, func() {
		res := allocation.Allocate(cases(2, model.OffenseModerate), nil, 5)

		So(res.Unassigned, ShouldEqual, 2)
		So(res.Judges, ShouldBeEmpty)
	})
}

func TestEligible(t *testing.T) {
	Convey("Given the eligibility rules", t, func() {
		So(allocation.Eligible(model.OffenseHeinous, model.LevelSenior), ShouldBeTrue)
		So(allocation.Eligible(model.OffenseHeinous, model.LevelMid), ShouldBeFalse)
		So(allocation.Eligible(model.OffenseSerious, model.LevelMid), ShouldBeTrue)
		So(allocation.Eligible(model.OffenseSerious, model.LevelJunior), ShouldBeFalse)
		So(allocation.Eligible(model.OffenseModerate, model.LevelJunior), ShouldBeTrue)
		So(allocation.Eligible("Petty", model.LevelSenior), ShouldBeFalse)
	})
}

func TestNewRoster(t *testing.T) {
	Convey("Given a valid roster", t, func() {
		r, err := allocation.NewRoster([]model.Judge{{Name: " A ", Level: "senior", Load: 3}})

		So(err, ShouldBeNil)
		So(r[0], ShouldResemble, model.Judge{Name: "A", Level: model.LevelSenior})
	})

	Convey("Given invalid rosters", t, func() {
		_, err := allocation.NewRoster([]model.Judge{{Name: "", Level: model.LevelMid}})
		So(errors.Is(err, allocation.ErrEmptyJudgeName), ShouldBeTrue)

		_, err = allocation.NewRoster([]model.Judge{{Name: "A", Level: model.LevelMid}, {Name: "A", Level: model.LevelJunior}})
		So(errors.Is(err, allocation.ErrDuplicateJudge), ShouldBeTrue)

		_, err = allocation.NewRoster([]model.Judge{{Name: "A", Level: "Chief"}})
		So(errors.Is(err, allocation.ErrUnknownLevel), ShouldBeTrue)
	})

	Convey("Given the default roster", t, func() {
		r, err := allocation.NewRoster(allocation.DefaultRoster())

		So(err, ShouldBeNil)
		So(r, ShouldHaveLength, 5)
	})
}
