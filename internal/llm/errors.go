package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// RateLimitError is a 429 from the provider. RetryAfter is zero when the
// provider gave no hint.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// RejectedError is a 4xx other than 429, such as a bad API key or an
// unknown model. Repeating the request cannot help.
type RejectedError struct {
	Status int
	Err    error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("request rejected (%d): %v", e.Status, e.Err)
}

func (e *RejectedError) Unwrap() error { return e.Err }

// UnavailableError covers 5xx replies and transport failures.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// InvalidOutputError is a reply that is not JSON or does not match the
// requested schema.
type InvalidOutputError struct {
	Schema  string
	Content json.RawMessage
	Err     error
}

func (e *InvalidOutputError) Error() string {
	if e.Schema == "" {
		return fmt.Sprintf("invalid LLM output: %v", e.Err)
	}
	return fmt.Sprintf("invalid %s output: %v", e.Schema, e.Err)
}

func (e *InvalidOutputError) Unwrap() error { return e.Err }

// TruncatedError is a reply cut off by the token budget.
type TruncatedError struct {
	Purpose   string
	MaxTokens int
	Content   json.RawMessage
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%s reply truncated at %d tokens", orUnknown(e.Purpose), e.MaxTokens)
}

// statusError maps an HTTP status from a provider SDK error.
func statusError(status int, header http.Header, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfter(header), Err: err}
	case status >= 400 && status < 500:
		return &RejectedError{Status: status, Err: err}
	default:
		return &UnavailableError{Err: err}
	}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
