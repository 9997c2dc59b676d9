package server

import (
	"errors"
	"fmt"
)

// Stage names the startup or accept step that failed. Each one is fatal.
type Stage int

const (
	ResolveFailure Stage = iota
	SocketCreateFailure
	BindFailure
	ListenFailure
	AcceptFailure
)

func (s Stage) Error() string {
	switch s {
	case ResolveFailure:
		return "address resolution failed"
	case SocketCreateFailure:
		return "socket creation failed"
	case BindFailure:
		return "bind failed"
	case ListenFailure:
		return "listen failed"
	case AcceptFailure:
		return "accept failed"
	default:
		return fmt.Sprintf("unknown stage: %d", int(s))
	}
}

// ExitCode is 2 for resolution failures and 1 for everything else.
func (s Stage) ExitCode() int {
	if s == ResolveFailure {
		return 2
	}
	return 1
}

type Error struct {
	Stage      Stage
	underlying error
}

func (e *Error) Error() string {
	if e.underlying != nil {
		return fmt.Sprintf("%s: %v", e.Stage.Error(), e.underlying)
	}
	return e.Stage.Error()
}

func (e *Error) Unwrap() error {
	return e.underlying
}

func newError(s Stage, underlying error) *Error {
	return &Error{Stage: s, underlying: underlying}
}

// ExitCode returns the process status for an error from Listen or Accept.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Stage.ExitCode()
	}
	return 1
}
