package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failed submission.
type Kind int

const (
	// KindNetwork means the request never completed.
	KindNetwork Kind = iota + 1

	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP

	// KindDecode means the response body was not valid JSON.
	KindDecode

	// KindRemote means the server answered 2xx but reported failure in the body.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	case KindRemote:
		return "remote"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a failed submission flattened to a display message.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 for network failures
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrAuth marks failures to set up gateway authentication.
var ErrAuth = errors.New("auth error")

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
