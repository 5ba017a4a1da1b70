package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNoArguments indicates neither a static nor a source manifest was given
	ErrNoArguments = errors.New("you did not give any arguments")

	// ErrNoStaticFile indicates the static manifest is missing
	ErrNoStaticFile = errors.New("you must specify a static sha1 file")

	// ErrNoSourceFile indicates the source manifest is missing
	ErrNoSourceFile = errors.New("you must specify a target file")

	// ErrReadFailed indicates an input manifest could not be read
	ErrReadFailed = errors.New("failed to read input")

	// ErrWriteFailed indicates writing output failed
	ErrWriteFailed = errors.New("failed to write output")
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// StageError wraps a failure with the stage of the run it happened in
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	switch e.Stage {
	case StageRead:
		return fmt.Sprintf("%v: %v", ErrReadFailed, e.Err)
	case StageWrite:
		return fmt.Sprintf("%v: %v", ErrWriteFailed, e.Err)
	}
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel for the stage
func (e *StageError) Is(target error) bool {
	switch e.Stage {
	case StageRead:
		return target == ErrReadFailed
	case StageWrite:
		return target == ErrWriteFailed
	}
	return false
}

// Run stages
const (
	StageRead  = "read"
	StageParse = "parse"
	StageMerge = "merge"
	StageWrite = "write"
)

// NewStageError creates a new StageError
func NewStageError(stage string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Err:   err,
	}
}
