// Package llm generates structured coaching output (example sentences and
// sentence feedback) through one of several hosted model APIs.
package llm

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DefaultMaxTokens is used when a request does not set a budget. Coach
// replies are a few sentences of JSON, so this is generous.
const DefaultMaxTokens = 1024

// Provider generates one reply for a request. When the request carries a
// Schema the reply content is JSON that has been validated against it.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn coaching request.
type Request struct {
	// Purpose labels the request in the journal, e.g. "example-sentences".
	Purpose string

	System   string
	Messages []Message

	// Schema, when set, asks the provider for JSON matching it.
	Schema *Schema

	// MaxTokens caps the reply. Zero means DefaultMaxTokens.
	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for a structured reply. It is compiled on
// first use; a Schema must not be modified after that.
type Schema struct {
	// Name is sent as the tool or format name, kebab-case.
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// StopReason is why the model stopped generating.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish checks a provider reply before it is returned. A reply cut off
// by the token budget is reported as truncated rather than as a schema
// failure, since the partial JSON would never validate.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == StopMaxTokens {
		return nil, &TruncatedError{Purpose: req.Purpose, MaxTokens: req.maxTokens(), Content: resp.Content}
	}
	if req.Schema != nil {
		if err := req.Schema.Validate(resp.Content); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
