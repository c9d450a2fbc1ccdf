package host

import (
	"errors"
	"fmt"
)

// Layout errors.
var (
	// ErrInvalidWindow indicates the target window is not live.
	ErrInvalidWindow = errors.New("invalid window")

	// ErrUnsplittableWindow indicates the target is a reserved window
	// (the echo area) that cannot be split, closed or maximized.
	ErrUnsplittableWindow = errors.New("window cannot be split or maximized")

	// ErrWindowTooSmall indicates a split or resize would leave a window
	// below the minimum height.
	ErrWindowTooSmall = errors.New("window too small")

	// ErrCannotResize indicates there is no neighbor to trade rows with.
	ErrCannotResize = errors.New("window cannot be resized")

	// ErrLastWindow indicates an attempt to close the only ordinary window.
	ErrLastWindow = errors.New("cannot close the last window")

	// ErrBeginningOfBuffer indicates a backward scroll at the buffer start.
	ErrBeginningOfBuffer = errors.New("beginning of buffer")

	// ErrEndOfBuffer indicates a forward scroll at the buffer end.
	ErrEndOfBuffer = errors.New("end of buffer")

	// ErrNotSupported indicates the host lacks an optional capability.
	ErrNotSupported = errors.New("operation not supported by host")
)

// OperationError records the operation and window that failed.
type OperationError struct {
	Op     string   // Operation name (e.g., "split", "close")
	Window WindowID // Target window
	Err    error    // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op string, w WindowID, err error) *OperationError {
	return &OperationError{Op: op, Window: w, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s window %d", e.Op, e.Window)
	}
	return fmt.Sprintf("%s window %d: %v", e.Op, e.Window, e.Err)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsUserError returns true for errors that should be shown to the user
// rather than treated as defects.
func IsUserError(err error) bool {
	return errors.Is(err, ErrUnsplittableWindow) ||
		errors.Is(err, ErrWindowTooSmall) ||
		errors.Is(err, ErrCannotResize) ||
		errors.Is(err, ErrLastWindow) ||
		errors.Is(err, ErrBeginningOfBuffer) ||
		errors.Is(err, ErrEndOfBuffer) ||
		errors.Is(err, ErrNotSupported)
}
