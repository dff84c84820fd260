package allocation

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrEmptyJudgeName = errors.New("judge name is empty")
	ErrDuplicateJudge = errors.New("duplicate judge name")
	ErrUnknownLevel   = errors.New("unknown judge level")
)
