package domain

import (
	"errors"
	"io/fs"
)

// Sentinel errors for a send attempt. Every failure a caller can observe
// matches exactly one of these with errors.Is.
var (
	// ErrInvalidDestination is returned when the destination does not parse as an http(s) URL.
	ErrInvalidDestination = errors.New("beacon: invalid destination")

	// ErrInvalidPayload is returned when the payload cannot be encoded as a JSON object.
	ErrInvalidPayload = errors.New("beacon: invalid payload")

	// ErrResourceNotFound is returned when a bundled resource is missing or unreadable.
	ErrResourceNotFound = errors.New("beacon: resource not found")

	// ErrTransport is returned when the HTTP exchange itself fails.
	ErrTransport = errors.New("beacon: transport error")

	// ErrSendInProgress is returned when a send is triggered while another is outstanding.
	ErrSendInProgress = errors.New("beacon: send in progress")
)

// TransportError carries the HTTP client failure (connection refused,
// timeout, DNS failure, ...).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ErrTransport.Error()
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ResourceError reports a bundled resource that could not be loaded.
type ResourceError struct {
	// Name is the file name inside the bundle, including the .json suffix.
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	return "load " + e.Name + ": " + e.Description()
}

// Description returns a short human-readable cause.
func (e *ResourceError) Description() string {
	switch {
	case e.Err == nil:
		return "unknown error"
	case errors.Is(e.Err, fs.ErrNotExist):
		return e.Name + " not found in bundle"
	case errors.Is(e.Err, fs.ErrInvalid):
		return "invalid resource name"
	default:
		return e.Err.Error()
	}
}

func (e *ResourceError) Unwrap() error { return e.Err }

func (e *ResourceError) Is(target error) bool { return target == ErrResourceNotFound }
