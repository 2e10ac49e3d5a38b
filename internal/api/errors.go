package api

import (
	"errors"
	"fmt"
)

// ErrOperationFailed is the only failure the UI distinguishes. Every *Error
// matches it with errors.Is.
var ErrOperationFailed = errors.New("operation failed")

// ErrorKind classifies gateway failures for logs and tests.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTransport
	KindStatus
	KindDecode
	KindEncode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error is returned by every HTTPGateway call that fails.
type Error struct {
	Kind     ErrorKind
	Method   string
	Resource Resource
	// Status is the HTTP status code for KindStatus, zero otherwise.
	Status int
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Resource.Path(), e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrOperationFailed }

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}
