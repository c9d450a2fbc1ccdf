package command

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/quietwin/internal/host"
)

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling an action.
type Result struct {
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for the echo area.
	Message string

	// Redraw indicates the frame changed and must be repainted.
	Redraw bool

	// InvocationID is copied from the dispatched action.
	InvocationID uuid.UUID
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success returns a result for an action that changed the frame.
func Success() Result {
	return Result{Status: StatusOK, Redraw: true}
}

// SuccessWithMessage returns a redrawing result carrying a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg, Redraw: true}
}

// NoOp returns a result for an action that did nothing.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage returns a no-op result carrying a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error returns a result for err. User errors carry their bare message
// for the echo area; anything else is reported with its full context.
func Error(err error) Result {
	msg := err.Error()
	var opErr *host.OperationError
	if host.IsUserError(err) && errors.As(err, &opErr) && opErr.Err != nil {
		msg = opErr.Err.Error()
	}
	return Result{Status: StatusError, Error: err, Message: msg}
}

// Errorf returns an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// fromErr returns Success when err is nil and Error(err) otherwise.
func fromErr(err error) Result {
	if err != nil {
		return Error(err)
	}
	return Success()
}
