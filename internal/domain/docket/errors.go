package docket

import "errors"

// ErrDuplicateCase is returned when a case number is already on the docket.
var ErrDuplicateCase = errors.New("duplicate case number")
