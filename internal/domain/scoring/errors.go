package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrUnknownOffense = errors.New("unknown offense")
	ErrInvalidAge     = errors.New("invalid case age")
	ErrNegativeWeight = errors.New("weight must be non-negative")
	ErrWeightSum      = errors.New("weights must sum to 100")
)
