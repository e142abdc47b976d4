package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed operation
type ErrorKind int

const (
	// KindOperationFailed is a routine, expected failure: missing source,
	// failed open/close/chmod/mkdir, failed stream copy.
	KindOperationFailed ErrorKind = iota
	// KindConfiguration is a construction-time failure: the root cannot be
	// created, is not a directory or is not writable.
	KindConfiguration
	// KindNotSupported is raised when a disallowed symbolic link is met.
	KindNotSupported
	// KindUnreadableFile is raised when an entry's readability cannot be confirmed.
	KindUnreadableFile
)

// String returns the string representation of the ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindOperationFailed:
		return "operation failed"
	case KindConfiguration:
		return "configuration error"
	case KindNotSupported:
		return "not supported"
	case KindUnreadableFile:
		return "unreadable file"
	default:
		return "unknown error"
	}
}

// Sentinels matching each ErrorKind through errors.Is.
var (
	ErrOperationFailed = errors.New("operation failed")
	ErrConfiguration   = errors.New("configuration error")
	ErrNotSupported    = errors.New("not supported")
	ErrUnreadableFile  = errors.New("unreadable file")
)

// Error is the failure outcome of every adapter operation.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindOperationFailed:
		return ErrOperationFailed
	case KindConfiguration:
		return ErrConfiguration
	case KindNotSupported:
		return ErrNotSupported
	case KindUnreadableFile:
		return ErrUnreadableFile
	default:
		return nil
	}
}

// NewError builds an *Error. An err that is already an *Error is returned
// unchanged so the innermost classification wins.
func NewError(kind ErrorKind, op, path string, err error) error {
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Failed builds a KindOperationFailed error.
func Failed(op, path string, err error) error {
	return NewError(KindOperationFailed, op, path, err)
}

// KindOfError returns the kind of err, and false when err is not an *Error.
func KindOfError(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindOperationFailed, false
}

// IsOperationFailed reports whether err is a routine operation failure.
func IsOperationFailed(err error) bool { return errors.Is(err, ErrOperationFailed) }

// IsConfiguration reports whether err is a construction-time failure.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

// IsNotSupported reports whether err was caused by a disallowed link.
func IsNotSupported(err error) bool { return errors.Is(err, ErrNotSupported) }

// IsUnreadableFile reports whether err was caused by an unreadable entry.
func IsUnreadableFile(err error) bool { return errors.Is(err, ErrUnreadableFile) }
