package casefile

import "errors"

// ErrMissingColumn is returned when the dataset header lacks a required field.
var ErrMissingColumn = errors.New("dataset is missing a required column")
