package domain

import (
	"errors"
	"fmt"
)

// ResultKind classifies the outcome of a send attempt.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultStatus
	ResultInvalidDestination
	ResultInvalidPayload
	ResultResourceNotFound
	ResultTransportError
	ResultBusy
)

// String returns a human-readable representation of the kind.
func (k ResultKind) String() string {
	switch k {
	case ResultNone:
		return "None"
	case ResultStatus:
		return "Status"
	case ResultInvalidDestination:
		return "InvalidDestination"
	case ResultInvalidPayload:
		return "InvalidPayload"
	case ResultResourceNotFound:
		return "ResourceNotFound"
	case ResultTransportError:
		return "TransportError"
	case ResultBusy:
		return "Busy"
	default:
		return "Unknown"
	}
}

// Result is the transient outcome of one send attempt. It is overwritten
// on every send and never kept in a history.
type Result struct {
	Kind ResultKind

	// StatusCode is set when Kind is ResultStatus.
	StatusCode int

	// Destination is the URL the request was (or would have been) sent to.
	Destination string

	// Err is set for every failing kind.
	Err error
}

// StatusResult builds the result for a received HTTP response.
func StatusResult(code int, destination string) Result {
	return Result{Kind: ResultStatus, StatusCode: code, Destination: destination}
}

// ErrorResult classifies err into a failing Result.
func ErrorResult(err error, destination string) Result {
	r := Result{Destination: destination, Err: err}
	switch {
	case errors.Is(err, ErrInvalidDestination):
		r.Kind = ResultInvalidDestination
	case errors.Is(err, ErrInvalidPayload):
		r.Kind = ResultInvalidPayload
	case errors.Is(err, ErrResourceNotFound):
		r.Kind = ResultResourceNotFound
	case errors.Is(err, ErrSendInProgress):
		r.Kind = ResultBusy
	default:
		r.Kind = ResultTransportError
	}
	return r
}

// Failed reports whether no HTTP status was received.
func (r Result) Failed() bool {
	return r.Kind != ResultStatus
}

// String returns the display text for the result.
func (r Result) String() string {
	switch r.Kind {
	case ResultNone:
		return "<no response yet>"
	case ResultStatus:
		return fmt.Sprintf("Status: %d", r.StatusCode)
	case ResultInvalidDestination:
		return "Invalid URL"
	case ResultInvalidPayload:
		return "Invalid JSON payload"
	case ResultResourceNotFound:
		var re *ResourceError
		if errors.As(r.Err, &re) {
			return fmt.Sprintf("Failed to load %s: %s", re.Name, re.Description())
		}
		return fmt.Sprintf("Failed to load resource: %v", r.Err)
	case ResultTransportError:
		if r.Err == nil {
			return "Error: unknown transport failure"
		}
		return "Error: " + r.Err.Error()
	case ResultBusy:
		return "Send in progress"
	default:
		return "Unknown result"
	}
}
