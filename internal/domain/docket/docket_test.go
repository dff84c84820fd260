package docket_test

import (
	"errors"
	"fmt"
	"testing"

	docket "github.com/okian/docket/internal/domain/docket"
	intake "github.com/okian/docket/internal/domain/intake"
	model "github.com/okian/docket/internal/domain/model"
	scoring "github.com/okian/docket/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func record(caseNo, offense, vulnerable, age, bail, trial string) intake.Record {
	return intake.Record{
		intake.FieldCaseNo:     caseNo,
		intake.FieldOffense:    offense,
		intake.FieldVulnerable: vulnerable,
		intake.FieldAge:        age,
		intake.FieldBailMatter: bail,
		intake.FieldUnderTrial: trial,
	}
}

func caseNos(cases []model.Case) []string {
	out := make([]string, len(cases))
	for i, c := range cases {
		out[i] = c.CaseNo
	}
	return out
}

func TestScoreAndAugment(t *testing.T) {
	Convey("Given a batch with valid and invalid records", t, func() {
		scorer := scoring.New()
		records := []intake.Record{
			record("A", "Heinous", "None", "10", "No", "No"),
			record("B", "Petty", "None", "10", "No", "No"),
			record("C", "Serious", "Woman", "2", "Yes", "Yes"),
			record("D", "Moderate", "None", "old", "No", "No"),
			record("A", "Moderate", "None", "1", "No", "No"),
		}

		cases, rejected := docket.ScoreAndAugment(scorer, records)

		Convey("Then valid records are scored in batch order", func() {
			So(caseNos(cases), ShouldResemble, []string{"A", "C"})
			So(cases[0].Score, ShouldEqual, 41.00)
			So(cases[0].HearingsRequired, ShouldEqual, 5)
			So(cases[0].Status, ShouldEqual, model.StatusPending)
			So(cases[0].Seq, ShouldEqual, 0)
			So(cases[1].Score, ShouldEqual, 79.00)
			So(cases[1].Seq, ShouldEqual, 2)
		})

		Convey("And each bad record is reported with its kind", func() {
			So(len(rejected), ShouldEqual, 3)

			So(rejected[0].Index, ShouldEqual, 1)
			So(rejected[0].CaseNo, ShouldEqual, "B")
			So(errors.Is(rejected[0], intake.ErrValidation), ShouldBeTrue)

			So(rejected[1].Index, ShouldEqual, 3)
			So(errors.Is(rejected[1], intake.ErrUnscoreable), ShouldBeTrue)

			So(rejected[2].Index, ShouldEqual, 4)
			So(errors.Is(rejected[2], docket.ErrDuplicateCase), ShouldBeTrue)
		})
	})

	Convey("Given an empty batch", t, func() {
		cases, rejected := docket.ScoreAndAugment(scoring.New(), nil)

		So(cases, ShouldBeEmpty)
		So(rejected, ShouldBeEmpty)
	})
}

func TestSortByPriority(t *testing.T) {
	Convey("Given cases with tied scores", t, func() {
		in := []model.Case{
			{CaseNo: "low", Score: 20},
			{CaseNo: "tie-1", Score: 50},
			{CaseNo: "high", Score: 90},
			{CaseNo: "tie-2", Score: 50},
			{CaseNo: "tie-3", Score: 50},
		}

		out := docket.SortByPriority(in)

		Convey("Then scores descend and ties keep input order", func() {
			So(caseNos(out), ShouldResemble, []string{"high", "tie-1", "tie-2", "tie-3", "low"})
		})

		Convey("And the input is untouched", func() {
			So(in[0].CaseNo, ShouldEqual, "low")
		})

		Convey("And sorting again changes nothing", func() {
			So(docket.SortByPriority(out), ShouldResemble, out)
		})
	})
}

func TestAppend(t *testing.T) {
	Convey("Given a sorted docket", t, func() {
		existing := docket.SortByPriority([]model.Case{
			{CaseNo: "A", Score: 80, Seq: 0},
			{CaseNo: "B", Score: 50, Seq: 1},
			{CaseNo: "C", Score: 50, Seq: 2},
			{CaseNo: "D", Score: 10, Seq: 3},
		})

		Convey("When appending a case tied with existing ones", func() {
			out, err := docket.Append(model.Case{CaseNo: "E", Score: 50}, existing)

			Convey("Then it lands after the earlier ties", func() {
				So(err, ShouldBeNil)
				So(caseNos(out), ShouldResemble, []string{"A", "B", "C", "E", "D"})
				So(out[3].Seq, ShouldEqual, 4)
			})

			Convey("And the existing slice is not modified", func() {
				So(caseNos(existing), ShouldResemble, []string{"A", "B", "C", "D"})
			})
		})

		Convey("When appending a higher priority case", func() {
			out, err := docket.Append(model.Case{CaseNo: "F", Score: 99}, existing)

			So(err, ShouldBeNil)
			So(caseNos(out), ShouldResemble, []string{"F", "A", "B", "C", "D"})
		})

		Convey("When appending a duplicate case number", func() {
			_, err := docket.Append(model.Case{CaseNo: "B", Score: 1}, existing)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, docket.ErrDuplicateCase), ShouldBeTrue)
			})
		})

		Convey("When appending many cases one by one", func() {
			out := existing
			for i := 0; i < 5; i++ {
				var err error
				out, err = docket.Append(model.Case{CaseNo: fmt.Sprintf("N%d", i), Score: 50}, out)
				So(err, ShouldBeNil)
			}

			Convey("Then ties stay in insertion order", func() {
				So(caseNos(out), ShouldResemble, []string{"A", "B", "C", "N0", "N1", "N2", "N3", "N4", "D"})
			})
		})
	})
}
