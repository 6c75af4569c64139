package lib

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a launch did not end in a normal exit.
type FailureKind int

const (
	KindNone FailureKind = iota
	// KindLaunchFailed means the process never started.
	KindLaunchFailed
	// KindTimeout means the process was killed after exceeding its wait bound.
	KindTimeout
	// KindMemoryLimit means the process was killed for exceeding its memory cap.
	KindMemoryLimit
	// KindSignaled means the process was terminated by a signal nobody here sent.
	KindSignaled
	// KindCanceled means the caller's context ended first.
	KindCanceled
	// KindUnsupported means the requested mode is not available on this platform.
	KindUnsupported
	// KindUnknownProcess means a handle does not belong to this launcher.
	KindUnknownProcess
)

func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLaunchFailed:
		return "launch failed"
	case KindTimeout:
		return "timeout"
	case KindMemoryLimit:
		return "memory limit"
	case KindSignaled:
		return "signaled"
	case KindCanceled:
		return "canceled"
	case KindUnsupported:
		return "unsupported"
	case KindUnknownProcess:
		return "unknown process"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is matching against a *LaunchError.
var (
	ErrLaunchFailed   = errors.New("launch failed")
	ErrTimeout        = errors.New("timeout")
	ErrMemoryLimit    = errors.New("memory limit exceeded")
	ErrSignaled       = errors.New("terminated by signal")
	ErrCanceled       = errors.New("canceled")
	ErrUnsupported    = errors.New("unsupported operation")
	ErrUnknownProcess = errors.New("unknown process")
)

var kindSentinels = map[FailureKind]error{
	KindLaunchFailed:   ErrLaunchFailed,
	KindTimeout:        ErrTimeout,
	KindMemoryLimit:    ErrMemoryLimit,
	KindSignaled:       ErrSignaled,
	KindCanceled:       ErrCanceled,
	KindUnsupported:    ErrUnsupported,
	KindUnknownProcess: ErrUnknownProcess,
}

// LaunchError reports a failed or abnormally terminated launch.
// Msg is the human readable diagnostic, Err the underlying OS error if any.
type LaunchError struct {
	Kind FailureKind
	Msg  string
	Err  error
}

func NewLaunchError(kind FailureKind, msg string, err error) *LaunchError {
	return &LaunchError{Kind: kind, Msg: msg, Err: err}
}

func (e *LaunchError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

func (e *LaunchError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// KindOf returns the failure kind carried by err, KindNone if there is none.
func KindOf(err error) FailureKind {
	var le *LaunchError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindNone
}

// ExecutionFailed reports whether err means the launch did not produce a normal exit.
func ExecutionFailed(err error) bool {
	return KindOf(err) != KindNone
}
