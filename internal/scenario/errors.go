package scenario

import "errors"

var (
	ErrUnhealthy   = errors.New("service unhealthy")
	ErrStatus      = errors.New("unexpected status")
	ErrCapacity    = errors.New("judge over capacity")
	ErrEligibility = errors.New("ineligible assignment")
	ErrHearings    = errors.New("hearings went backwards")
	ErrDisposed    = errors.New("disposed count mismatch")
	ErrNoCases     = errors.New("no cases to save")
)
