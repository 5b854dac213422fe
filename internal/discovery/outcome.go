package discovery

import (
	"context"

	"github.com/rotisserie/eris"
)

// ErrMissingCredential is reported when no API key was configured for the backend.
var ErrMissingCredential = eris.New("discovery: missing credential")

// Failure classifies why a discovery call produced no text.
type Failure int

const (
	FailureNone Failure = iota
	FailureConfig
	FailureBackend
	FailureTimeout
	FailureRateLimited
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureConfig:
		return "configuration"
	case FailureBackend:
		return "backend"
	case FailureTimeout:
		return "timeout"
	case FailureRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single discovery call: raw text on success,
// otherwise a failure kind and the underlying error.
type Outcome struct {
	Text    string
	Failure Failure
	Err     error
}

// Succeeded wraps raw backend text in a successful outcome.
func Succeeded(text string) Outcome {
	return Outcome{Text: text}
}

// Failed builds a failed outcome of the given kind.
func Failed(kind Failure, err error) Outcome {
	if kind == FailureNone {
		kind = FailureBackend
	}
	return Outcome{Failure: kind, Err: err}
}

// OK reports whether the call produced text.
func (o Outcome) OK() bool {
	return o.Failure == FailureNone
}

// Client is a grounded generative backend able to answer a discovery prompt.
type Client interface {
	// Configured reports whether a credential is available. Callers must not
	// invoke Discover when it returns false.
	Configured() bool
	Discover(ctx context.Context, prompt string) Outcome
}
