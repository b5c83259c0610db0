// internal/app/system/apiclient/errors.go
package apiclient

import (
	"errors"
	"fmt"
)

// Failure kinds reported by Kind().
const (
	KindTransport = "transport"
	KindStatus    = "status"
	KindPayload   = "payload"
	KindUnknown   = "unknown"
)

// maxBodyPreview bounds how much of an error body a StatusError keeps.
const maxBodyPreview = 512

// TransportError means the request never produced a response: dial, TLS,
// read failures, or the caller's context ending.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("apiclient: %s: transport: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Kind reports KindTransport.
func (e *TransportError) Kind() string { return KindTransport }

// StatusError means the backend answered with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string // bounded preview
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("apiclient: %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("apiclient: %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Kind reports KindStatus.
func (e *StatusError) Kind() string { return KindStatus }

// PayloadError means the backend answered 2xx but the body did not have the
// expected shape (not JSON, missing envelope, wrong field types).
type PayloadError struct {
	Endpoint string
	Err      error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("apiclient: %s: payload: %v", e.Endpoint, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

// Kind reports KindPayload.
func (e *PayloadError) Kind() string { return KindPayload }

// errMissingEnvelope is wrapped in a PayloadError when a dashboard response
// lacks its "data" member.
var errMissingEnvelope = errors.New(`response has no "data" member`)

var errProtocolsNotArray = errors.New(`"protocols" is not an array`)

// KindOf returns the failure kind of err, or KindUnknown when err does not
// carry one.
func KindOf(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

func preview(b []byte) string {
	if len(b) > maxBodyPreview {
		return string(b[:maxBodyPreview]) + "..."
	}
	return string(b)
}
