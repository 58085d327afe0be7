package llm

import (
	"errors"
	"fmt"
)

// FailReason tags why a language-model call produced no usable result.
type FailReason string

const (
	// ReasonTimeout covers context deadline expiry on the HTTP round-trip.
	ReasonTimeout FailReason = "timeout"
	// ReasonTransport covers network errors and non-2xx responses.
	ReasonTransport FailReason = "transport"
	// ReasonMalformed covers undecodable or schema-violating model output.
	ReasonMalformed FailReason = "malformed"
)

// CallError is the only error type the LLM clients return. Collapsing every
// failure mode into one branch loses the distinctions callers need, so the
// reason rides along explicitly.
type CallError struct {
	Reason FailReason
	Err    error
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm call failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("llm call failed (%s)", e.Reason)
}

func (e *CallError) Unwrap() error { return e.Err }

// ReasonOf extracts the tagged reason from an error, defaulting to transport
// for anything that is not a CallError.
func ReasonOf(err error) FailReason {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Reason
	}
	return ReasonTransport
}
