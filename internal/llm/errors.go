package llm

import (
	"errors"
	"fmt"
)

// FailureKind classifies how an endpoint call went wrong. The three
// kinds are recovered identically by callers (original text fallback)
// but logged with distinguishing detail.
type FailureKind int

const (
	// KindTransport covers connection failures and timeouts.
	KindTransport FailureKind = iota
	// KindProtocol covers non-2xx HTTP responses.
	KindProtocol
	// KindFormat covers bodies missing expected fields, embedded API
	// error objects, and empty completions.
	KindFormat
)

func (k FailureKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// CallError is a classified endpoint call failure.
type CallError struct {
	Kind    FailureKind
	Message string
	Status  int // HTTP status, set for protocol failures
	Cause   error
}

func (e *CallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s failure (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s failure: %s", e.Kind, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

func newTransportError(message string, cause error) *CallError {
	return &CallError{Kind: KindTransport, Message: message, Cause: cause}
}

func newProtocolError(status int, message string) *CallError {
	return &CallError{Kind: KindProtocol, Status: status, Message: message}
}

func newFormatError(message string, cause error) *CallError {
	return &CallError{Kind: KindFormat, Message: message, Cause: cause}
}

// KindOf extracts the failure kind from an error chain. The second
// return reports whether err is a classified call failure at all.
func KindOf(err error) (FailureKind, bool) {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Kind, true
	}
	return 0, false
}
