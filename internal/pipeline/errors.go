package pipeline

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError means the proxy answered with a non-2xx status.
type TransportError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *TransportError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	return "proxy returned error: " + status
}

// EmptyContentError means the body was missing or shorter than the minimum.
type EmptyContentError struct {
	Length int
	Min    int
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("returned content seems empty or invalid (%d bytes, want at least %d)", e.Length, e.Min)
}

// StructureNotFoundError means the table selector matched no rows.
type StructureNotFoundError struct {
	Selector string
}

func (e *StructureNotFoundError) Error() string {
	return fmt.Sprintf("could not find the authors table (%s) in the downloaded HTML", e.Selector)
}

// UnexpectedFault wraps any other failure together with the stage it hit.
type UnexpectedFault struct {
	Stage string
	Err   error
}

func (e *UnexpectedFault) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *UnexpectedFault) Unwrap() error { return e.Err }

type Kind int

const (
	KindNone Kind = iota
	KindTransport
	KindEmptyContent
	KindStructureNotFound
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return ""
	case KindTransport:
		return "transport"
	case KindEmptyContent:
		return "empty_content"
	case KindStructureNotFound:
		return "structure_not_found"
	default:
		return "unexpected"
	}
}

func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	var (
		te *TransportError
		ee *EmptyContentError
		se *StructureNotFoundError
	)
	switch {
	case errors.As(err, &te):
		return KindTransport
	case errors.As(err, &ee):
		return KindEmptyContent
	case errors.As(err, &se):
		return KindStructureNotFound
	default:
		return KindUnexpected
	}
}

// Describe renders err as the single status line shown to the user.
func Describe(err error) string {
	switch Classify(err) {
	case KindNone:
		return MsgLoaded
	case KindTransport, KindEmptyContent, KindStructureNotFound:
		return "Error: " + err.Error()
	default:
		var uf *UnexpectedFault
		if errors.As(err, &uf) {
			return "Error: " + uf.Err.Error()
		}
		return "Error: " + err.Error()
	}
}
