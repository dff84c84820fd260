// Package repository keeps the docket in priority order.
package repository

import (
	"context"

	model "github.com/okian/docket/internal/domain/model"
)

// Entry is a case together with its 1-based position in priority order.
type Entry struct {
	Rank int
	Case model.Case
}

// Store provides read/write access to the ordered docket.
type Store interface {
	// Insert files a new case. The store assigns its insertion sequence.
	// Returns an error wrapping docket.ErrDuplicateCase if the case number exists.
	Insert(ctx context.Context, c model.Case) (model.Case, error)

	// Update replaces the mutable fields (hearings, status, judge) of an
	// existing case. Returns ErrNotFound if the case is unknown.
	Update(ctx context.Context, c model.Case) error

	// Get returns the case with the given number.
	Get(ctx context.Context, caseNo string) (model.Case, error)

	// Rank returns the case and its current position.
	Rank(ctx context.Context, caseNo string) (Entry, error)

	// TopN returns the first n cases in priority order.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// All returns every case in priority order.
	All(ctx context.Context) []model.Case

	// Count returns the number of cases on the docket.
	Count(ctx context.Context) int
}
