package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Reply is one scripted outcome: content, or Err.
type Reply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Scripted returns its replies in order and records the requests it saw.
// Once the script runs out every request fails with *UnavailableError.
// It backs the "mock" provider setting and the coach tests.
type Scripted struct {
	mu      sync.Mutex
	replies []Reply
	calls   []Request
}

func NewScripted(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

func (s *Scripted) ModelID() string { return "scripted" }

func (s *Scripted) Generate(_ context.Context, req Request) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	if len(s.replies) == 0 {
		return nil, &UnavailableError{}
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return finish(req, &Response{Content: r.Content, Usage: r.Usage, Model: "scripted", StopReason: StopEnd})
}

// Calls returns the requests seen so far.
func (s *Scripted) Calls() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.calls...)
}
