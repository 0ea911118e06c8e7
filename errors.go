package utapi

import (
	"errors"
	"fmt"
)

// Error is a type that allows for error constants below
type Error string

// Error returns a string representation of the error
func (e Error) Error() string { return string(e) }

const (
	// ErrMissingCredentials - no API key was supplied and none could be read from the
	// credential source (the UPLOADTHING_SECRET environment variable by default)
	ErrMissingCredentials = Error("missing credentials: no api key provided and UPLOADTHING_SECRET is not set")

	// ErrInvalidInput - caller-supplied arguments failed a documented precondition,
	// so no request was sent
	ErrInvalidInput = Error("invalid input")

	// ErrMalformedResponse - the service answered with a success status but a body
	// that does not match the endpoint's schema
	ErrMalformedResponse = Error("malformed response")

	// ErrUploadNotDone - polling stopped before the service marked the upload done
	ErrUploadNotDone = Error("upload not done")
)

// RemoteError is an error the UploadThing service itself reported: a non-success
// status whose body carried the service's error envelope. Status is the HTTP
// status code, Code and Message are the envelope fields when present, and Raw
// holds the unmodified body for callers that need more than the envelope.
type RemoteError struct {
	Status  int
	Code    string
	Message string
	Raw     []byte
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("uploadthing: %s (code %s, status %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("uploadthing: %s (status %d)", e.Message, e.Status)
}

// TransportError is a failure beneath the wire contract: the round trip itself
// failed, or the service answered an error status with a body that is not its
// own error envelope. Status is zero when no response was received.
type TransportError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("uploadthing: transport: %s", e.Err.Error())
	}
	return fmt.Sprintf("uploadthing: transport: unexpected status %d", e.Status)
}

// Unwrap returns the underlying cause, if any.
func (e *TransportError) Unwrap() error { return e.Err }

// IsMissingCredentials returns true if err indicates no usable API key was available.
func IsMissingCredentials(err error) bool { return errors.Is(err, ErrMissingCredentials) }

// IsInvalidInput returns true if err indicates caller arguments were rejected
// before any request was sent.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsMalformedResponse returns true if err indicates a success response whose body
// did not match the endpoint's schema.
func IsMalformedResponse(err error) bool { return errors.Is(err, ErrMalformedResponse) }

// IsRemoteError returns the typed service error and true when the service itself
// reported the failure.
func IsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsTransportError returns the typed transport error and true when the failure
// occurred beneath the wire contract.
func IsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
