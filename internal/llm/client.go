package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Client defines the interface for LLM providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// classifyHTTPStatus maps a non-200 provider status to an error kind.
func classifyHTTPStatus(status int) ErrorKind {
	switch status {
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusBadGateway, http.StatusServiceUnavailable, 529:
		return KindServerUnavailable
	default:
		return KindOther
	}
}

// classifyTransportError tags client-side transport failures. Deadline
// expiry (context or net-level) counts as a timeout.
func classifyTransportError(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindOther
}
