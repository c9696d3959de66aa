package debbugs

import (
	"fmt"

	"github.com/debbugs/go-debbugs/pkg/soap"
)

// ErrInvalidArgument is returned when a caller-supplied value violates
// an operation's precondition (empty bug list, non-positive amount).
// Check with errors.Is.
var ErrInvalidArgument = soap.ErrInvalidArgument

// MalformedResponseError is returned when the server's XML could not
// be decoded. Check with errors.As.
type MalformedResponseError = soap.MalformedResponseError

// TransportError wraps a failed HTTP exchange: the request never
// completed, or the server answered with a non-success status that
// carried no SOAP fault. Status is zero when no response was received.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error (HTTP %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FaultError carries a SOAP fault the server returned in place of a
// result.
type FaultError struct {
	Fault *soap.Fault
}

func (e *FaultError) Error() string { return "soap fault: " + e.Fault.Describe() }
