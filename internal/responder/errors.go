package responder

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a responder failure.
type Kind string

// Failure kinds
const (
	KindTimeout  Kind = "timeout"
	KindCanceled Kind = "canceled"
	KindRemote   Kind = "remote"
)

// Sentinel errors matched with errors.Is.
var (
	ErrTimeout  = errors.New("responder timed out")
	ErrCanceled = errors.New("responder call canceled")
	ErrRemote   = errors.New("responder failed")
)

// Error is the typed failure returned by every responder in this package.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind's sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := []error{sentinel(e.Kind)}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func sentinel(k Kind) error {
	switch k {
	case KindTimeout:
		return ErrTimeout
	case KindCanceled:
		return ErrCanceled
	default:
		return ErrRemote
	}
}

// KindOf reports the failure kind of err, or "" when err is nil.
// Errors not produced by this package count as remote failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindRemote
}

// Remote wraps a collaborator failure so it is retried and reported as remote.
func Remote(op string, err error) error {
	return &Error{Op: op, Kind: KindRemote, Err: err}
}

// classify turns a raw error into a typed *Error.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Op: op, Kind: KindTimeout, Err: err}
	case errors.Is(err, context.Canceled):
		return &Error{Op: op, Kind: KindCanceled, Err: err}
	default:
		return &Error{Op: op, Kind: KindRemote, Err: err}
	}
}
