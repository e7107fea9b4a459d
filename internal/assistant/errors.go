package assistant

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation. Every error returned by the
// session facade carries exactly one kind; callers branch on it with
// IsKind rather than string matching.
type Kind string

const (
	// KindEmptyDocument means there is no usable text to reason over.
	// Fatal to the requested operation, not to the session.
	KindEmptyDocument Kind = "empty_document"

	// KindMalformedResponse means the upstream reply failed schema
	// validation even after the automatic single retry.
	KindMalformedResponse Kind = "malformed_response"

	// KindUpstreamTimeout means no reply arrived within the per-call
	// budget. Not retried, so user-visible latency stays bounded.
	KindUpstreamTimeout Kind = "upstream_timeout"

	// KindUpstreamUnavailable means the model endpoint could not be
	// reached or refused the call.
	KindUpstreamUnavailable Kind = "upstream_unavailable"

	// KindInvalidChallengeState means a challenge operation was called
	// out of order, e.g. submitting an answer for a question that is
	// not in the current batch.
	KindInvalidChallengeState Kind = "invalid_challenge_state"
)

// Error is the failure result for any facade operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an assistant Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
