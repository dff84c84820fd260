package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
	// ErrInvalidRoster wraps judge list problems; it also matches ErrInvalidConfig.
	ErrInvalidRoster = fmt.Errorf("%w: roster", ErrInvalidConfig)
	// ErrUnknownSource is returned for a source other than csv or sqlite.
	ErrUnknownSource = fmt.Errorf("%w: unknown source", ErrInvalidConfig)
)
