package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed provider call. The provider adapters tag
// every error with a kind so the retry policy can dispatch on a closed
// enumeration instead of inspecting message strings.
type ErrorKind int

const (
	// KindOther covers failures that retrying will not fix (bad request,
	// auth, malformed response body).
	KindOther ErrorKind = iota

	// KindTimeout is a request that exceeded its deadline.
	KindTimeout

	// KindRateLimited is an HTTP 429 from the provider.
	KindRateLimited

	// KindServerUnavailable is a 5xx-class overload (502/503/529).
	KindServerUnavailable
)

// String returns the kind's wire-ish name for logs.
func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate_limited"
	case KindServerUnavailable:
		return "server_unavailable"
	default:
		return "other"
	}
}

// Retryable reports whether a call failing with this kind is worth retrying.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindTimeout, KindRateLimited, KindServerUnavailable:
		return true
	default:
		return false
	}
}

// CallError is the tagged error produced by provider adapters.
type CallError struct {
	Kind ErrorKind
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("llm call failed (%s): %v", e.Kind, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// NewCallError wraps err with a kind tag.
func NewCallError(kind ErrorKind, err error) *CallError {
	return &CallError{Kind: kind, Err: err}
}

// KindOf extracts the kind from an error chain. Untagged errors are KindOther.
func KindOf(err error) ErrorKind {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindOther
}
