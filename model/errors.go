package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// Causes carried by ConfigError.
var (
	ErrNoShapeOrSeed       = errors.New("either a shape or a seed is required")
	ErrInvalidShape        = errors.New("shape dimensions must be positive")
	ErrSeedTooLarge        = errors.New("seed is larger than the board")
	ErrEmptySeed           = errors.New("seed is empty")
	ErrRaggedSeed          = errors.New("seed rows differ in length")
	ErrSeedValue           = errors.New("seed value outside 0..classCount")
	ErrInvalidWeight       = errors.New("weight must be within [0, 1]")
	ErrInvalidClassCount   = errors.New("class count must be at least 1")
	ErrInvalidMutationProb = errors.New("mutation probability must be within [0, 1]")
	ErrUnknownPattern      = errors.New("unknown pattern")
)

// ConfigError reports invalid construction parameters. Use errors.Is against
// the Err* causes, or errors.Cause to get the cause directly.
type ConfigError struct {
	Err    error
	Detail string
}

func (e *ConfigError) Error() string {
	if e.Detail == "" {
		return "config: " + e.Err.Error()
	}
	return "config: " + e.Err.Error() + ": " + e.Detail
}

// Unwrap returns the cause
func (e *ConfigError) Unwrap() error { return e.Err }

// Cause implements the github.com/pkg/errors causer interface
func (e *ConfigError) Cause() error { return e.Err }

func newConfigError(cause error, format string, args ...any) error {
	return errors.WithStack(&ConfigError{Err: cause, Detail: fmt.Sprintf(format, args...)})
}
