// Package docket holds the pure operations over a collection of cases:
// batch scoring, priority ordering and appending.
package docket

import (
	"fmt"
	"sort"
	"strings"

	intake "github.com/okian/docket/internal/domain/intake"
	model "github.com/okian/docket/internal/domain/model"
	scoring "github.com/okian/docket/internal/domain/scoring"
)

// Rejection records a record that could not be scored. Valid records in the
// same batch are still scored.
type Rejection struct {
	Index  int    // position of the record in the input batch
	CaseNo string // may be empty when the case number itself was invalid
	Err    error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("record %d: %v", r.Index, r.Err)
}

func (r Rejection) Unwrap() error { return r.Err }

// Augment validates rec, scores it and fills in the derived fields.
func Augment(s *scoring.Scorer, rec intake.Record) (model.Case, error) {
	c, err := intake.Parse(rec)
	if err != nil {
		return model.Case{}, err
	}
	score, err := s.Score(c)
	if err != nil {
		return model.Case{}, fmt.Errorf("score case %s: %w", c.CaseNo, err)
	}
	c.Score = score
	return c, nil
}

// ScoreAndAugment scores every record in the batch. Accepted cases keep their
// batch order and get sequence numbers from their input index; records that
// fail validation or scoring are returned as rejections. A case number that
// repeats an earlier accepted record is rejected with ErrDuplicateCase.
func ScoreAndAugment(s *scoring.Scorer, records []intake.Record) ([]model.Case, []Rejection) {
	cases := make([]model.Case, 0, len(records))
	var rejected []Rejection
	seen := make(map[string]struct{}, len(records))

	for i, rec := range records {
		c, err := Augment(s, rec)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, CaseNo: strings.TrimSpace(rec.Get(intake.FieldCaseNo)), Err: err})
			continue
		}
		if _, dup := seen[c.CaseNo]; dup {
			rejected = append(rejected, Rejection{Index: i, CaseNo: c.CaseNo, Err: fmt.Errorf("%w: %s", ErrDuplicateCase, c.CaseNo)})
			continue
		}
		seen[c.CaseNo] = struct{}{}
		c.Seq = uint64(i)
		cases = append(cases, c)
	}

	return cases, rejected
}

// SortByPriority returns a copy of cases ordered by descending score. Ties
// keep their relative order in the input.
func SortByPriority(cases []model.Case) []model.Case {
	out := make([]model.Case, len(cases))
	copy(out, cases)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Append adds c to existing and returns the re-sorted collection. existing is
// not modified. Cases already present keep their relative order; the new case
// lands after every case with an equal score.
func Append(c model.Case, existing []model.Case) ([]model.Case, error) {
	var maxSeq uint64
	for _, e := range existing {
		if e.CaseNo == c.CaseNo {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCase, c.CaseNo)
		}
		if e.Seq >= maxSeq {
			maxSeq = e.Seq + 1
		}
	}
	if c.Seq < maxSeq {
		c.Seq = maxSeq
	}

	out := make([]model.Case, 0, len(existing)+1)
	out = append(out, existing...)
	out = append(out, c)
	return SortByPriority(out), nil
}
