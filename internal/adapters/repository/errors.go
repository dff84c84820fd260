package repository

import "errors"

// Sentinel kinds for docket store errors.
var (
	ErrNotFound         = errors.New("case not found")
	ErrInvalidLimit     = errors.New("invalid docket limit")
	ErrStatusRegression = errors.New("disposed case cannot return to pending")
)
