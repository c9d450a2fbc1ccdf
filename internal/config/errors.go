package config

import (
	"errors"
	"fmt"
)

var (
	// ErrSettingNotFound is wrapped with the missing path.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrTypeMismatch is matched by every *TypeError.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")
	// ErrInvalidPath reports an empty path or one that runs through a
	// non-table value.
	ErrInvalidPath = errors.New("invalid setting path")
	// ErrNotLoaded is returned by Reload before the first Load.
	ErrNotLoaded = errors.New("config not loaded")
)

func notFound(path string) error {
	return fmt.Errorf("%w: %s", ErrSettingNotFound, path)
}

// TypeError reports a setting whose value has the wrong type, such as a
// quoted number for display.tabWidth.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ValidationError reports a well-typed setting with an unusable value.
type ValidationError struct {
	Path    string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Path, e.Value, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
