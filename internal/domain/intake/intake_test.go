package intake_test

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	intake "github.com/okian/docket/internal/domain/intake"
	model "github.com/okian/docket/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func validRecord() intake.Record {
	return intake.Record{
		intake.FieldCaseNo:     "CR-101",
		intake.FieldOffense:    "Serious",
		intake.FieldVulnerable: "Senior Citizen",
		intake.FieldAge:        "4.5",
		intake.FieldBailMatter: "Yes",
		intake.FieldUnderTrial: "no",
	}
}

func TestParse(t *testing.T) {
	Convey("Given a valid record", t, func() {
		rec := validRecord()

		Convey("When parsing it", func() {
			c, err := intake.Parse(rec)

			Convey("Then the case carries canonical values and lifecycle defaults", func() {
				So(err, ShouldBeNil)
				So(c.CaseNo, ShouldEqual, "CR-101")
				So(c.Offense, ShouldEqual, model.OffenseSerious)
				So(c.Vulnerable, ShouldEqual, model.VulnerableSeniorCitizen)
				So(c.Age, ShouldEqual, 4.5)
				So(c.BailMatter, ShouldBeTrue)
				So(c.UnderTrial, ShouldBeFalse)
				So(c.HearingsRequired, ShouldEqual, 3)
				So(c.HearingsCompleted, ShouldEqual, 0)
				So(c.Status, ShouldEqual, model.StatusPending)
				So(c.Judge, ShouldEqual, "")
			})
		})
	})

	Convey("Given records with out-of-domain fields", t, func() {
		cases := []struct {
			field string
			value string
			rule  string
		}{
			{intake.FieldCaseNo, "", "required"},
			{intake.FieldOffense, "Petty", "offense"},
			{intake.FieldVulnerable, "Elder", "vulnerable"},
			{intake.FieldBailMatter, "maybe", "flag"},
			{intake.FieldUnderTrial, "", "required"},
		}

		for _, tc := range cases {
			rec := validRecord()
			rec[tc.field] = tc.value

			_, err := intake.Parse(rec)

			So(err, ShouldNotBeNil)
			So(errors.Is(err, intake.ErrValidation), ShouldBeTrue)
			So(errors.Is(err, intake.ErrUnscoreable), ShouldBeFalse)

			var verr *intake.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Field, ShouldEqual, tc.field)
			So(verr.Value, ShouldEqual, tc.value)
			So(verr.Rule, ShouldEqual, tc.rule)
		}
	})

	Convey("Given records with unscoreable ages", t, func() {
		for _, age := range []string{"", "abc", "-1", "NaN", "Inf", "0x1p4", "0X10", "1_000"} {
			rec := validRecord()
			rec[intake.FieldAge] = age

			_, err := intake.Parse(rec)

			So(errors.Is(err, intake.ErrUnscoreable), ShouldBeTrue)
			So(errors.Is(err, intake.ErrBadAge), ShouldBeTrue)

			var uerr *intake.UnscoreableError
			So(errors.As(err, &uerr), ShouldBeTrue)
			So(uerr.CaseNo, ShouldEqual, "CR-101")
			So(uerr.Value, ShouldEqual, age)
		}
	})

	Convey("Given a zero age", t, func() {
		rec := validRecord()
		rec[intake.FieldAge] = "0"

		c, err := intake.Parse(rec)

		So(err, ShouldBeNil)
		So(c.Age, ShouldEqual, 0)
	})

	Convey("Given decimal ages in other spellings", t, func() {
		for raw, want := range map[string]float64{"1.5e1": 15, "+2.5": 2.5, ".5": 0.5, "7.": 7} {
			age, err := intake.ParseAge(raw)
			So(err, ShouldBeNil)
			So(age, ShouldEqual, want)
		}
	})
}

func TestRecordJSON(t *testing.T) {
	Convey("Given a JSON body with mixed value types", t, func() {
		body := []byte(`{"CaseNo":"CR-7","Offense":"Heinous","Vulnerable":"Child","AgeofCase":12,"BailMatter":true,"UnderTrial":false,"Extra":null}`)

		var rec intake.Record
		err := json.Unmarshal(body, &rec)

		Convey("Then every value is stringified", func() {
			So(err, ShouldBeNil)
			So(rec[intake.FieldAge], ShouldEqual, "12")
			So(rec[intake.FieldBailMatter], ShouldEqual, "Yes")
			So(rec[intake.FieldUnderTrial], ShouldEqual, "No")
			So(rec["Extra"], ShouldEqual, "")
		})

		Convey("And it parses into a case", func() {
			c, err := intake.Parse(rec)
			So(err, ShouldBeNil)
			So(c.Offense, ShouldEqual, model.OffenseHeinous)
			So(c.Age, ShouldEqual, 12)
		})
	})

	Convey("Given a JSON body with a nested object", t, func() {
		var rec intake.Record
		err := json.Unmarshal([]byte(`{"CaseNo":{"a":1}}`), &rec)

		So(err, ShouldNotBeNil)
	})
}

func TestRecordOf(t *testing.T) {
	Convey("Given a parsed case", t, func() {
		c, err := intake.Parse(validRecord())
		So(err, ShouldBeNil)

		Convey("When rendering it back to a record", func() {
			rec := intake.RecordOf(c)

			Convey("Then the values use canonical spellings in column order", func() {
				So(rec.Values(), ShouldResemble, []string{"CR-101", "Serious", "SeniorCitizen", "4.5", "Yes", "No"})
			})

			Convey("And the record parses back to the same case", func() {
				again, err := intake.Parse(rec)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, c)
			})
		})
	})
}
