package intake

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	model "github.com/okian/docket/internal/domain/model"
)

// form is the validated shape of a record. Age is checked separately since
// a bad age is an unscoreable case rather than a malformed one.
type form struct {
	CaseNo     string `record:"CaseNo" validate:"required,max=64"`
	Offense    string `record:"Offense" validate:"required,offense"`
	Vulnerable string `record:"Vulnerable" validate:"required,vulnerable"`
	BailMatter string `record:"BailMatter" validate:"required,flag"`
	UnderTrial string `record:"UnderTrial" validate:"required,flag"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("record")
	})
	mustRegister("offense", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseOffense(fl.Field().String())
		return ok
	})
	mustRegister("vulnerable", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseVulnerable(fl.Field().String())
		return ok
	})
	mustRegister("flag", func(fl validator.FieldLevel) bool {
		_, ok := parseFlag(fl.Field().String())
		return ok
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Parse validates rec and returns the case it describes with its lifecycle
// fields initialised (pending, zero hearings completed). The score is left
// to the scoring engine.
func Parse(rec Record) (model.Case, error) {
	f := form{
		CaseNo:     strings.TrimSpace(rec.Get(FieldCaseNo)),
		Offense:    strings.TrimSpace(rec.Get(FieldOffense)),
		Vulnerable: strings.TrimSpace(rec.Get(FieldVulnerable)),
		BailMatter: strings.TrimSpace(rec.Get(FieldBailMatter)),
		UnderTrial: strings.TrimSpace(rec.Get(FieldUnderTrial)),
	}

	if err := validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return model.Case{}, &ValidationError{
				CaseNo: f.CaseNo,
				Field:  fe.Field(),
				Value:  fmt.Sprint(fe.Value()),
				Rule:   fe.Tag(),
			}
		}
		return model.Case{}, fmt.Errorf("validate record: %w", err)
	}

	rawAge := strings.TrimSpace(rec.Get(FieldAge))
	age, err := ParseAge(rawAge)
	if err != nil {
		return model.Case{}, &UnscoreableError{CaseNo: f.CaseNo, Value: rawAge, Err: err}
	}

	offense, _ := model.ParseOffense(f.Offense)
	vulnerable, _ := model.ParseVulnerable(f.Vulnerable)
	bail, _ := parseFlag(f.BailMatter)
	underTrial, _ := parseFlag(f.UnderTrial)

	return model.Case{
		CaseNo:           f.CaseNo,
		Offense:          offense,
		Vulnerable:       vulnerable,
		Age:              age,
		BailMatter:       bail,
		UnderTrial:       underTrial,
		HearingsRequired: offense.HearingsRequired(),
		Status:           model.StatusPending,
	}, nil
}

// decimalAge is a plain decimal number with an optional exponent. It keeps
// strconv's hex, underscore and Inf/NaN spellings out of the age column.
var decimalAge = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseAge parses a case age in years. Empty, non-decimal, NaN, infinite
// and negative values are rejected.
func ParseAge(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing: %w", ErrBadAge)
	}
	if !decimalAge.MatchString(s) {
		return 0, fmt.Errorf("not a number: %w", ErrBadAge)
	}
	age, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %w", ErrBadAge)
	}
	if math.IsNaN(age) || math.IsInf(age, 0) || age < 0 {
		return 0, ErrBadAge
	}
	return age, nil
}

// parseFlag accepts Yes/No and true/false in any case.
func parseFlag(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true":
		return true, true
	case "no", "false":
		return false, true
	default:
		return false, false
	}
}
