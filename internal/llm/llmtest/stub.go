// Package llmtest provides an in-memory llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/career-compass/internal/llm"
)

// Reply is one scripted outcome for Stub.
type Reply struct {
	Text    string
	Sources []string
	Err     error
}

// Stub is a scripted llm.Client. Replies are consumed in order; the last one
// repeats once the script is exhausted.
type Stub struct {
	mu       sync.Mutex
	replies  []Reply
	requests []llm.GroundedRequest
	closed   bool

	// Block, when non-nil, is waited on before answering so tests can hold a call open.
	Block chan struct{}
}

// New returns a Stub that answers with replies in order.
func New(replies ...Reply) *Stub {
	return &Stub{replies: replies}
}

// GenerateGrounded records the request and returns the next scripted reply.
func (s *Stub) GenerateGrounded(ctx context.Context, req llm.GroundedRequest) (*llm.GroundedResponse, error) {
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if len(s.replies) == 0 {
		return &llm.GroundedResponse{Text: "[]"}, nil
	}

	r := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	if r.Err != nil {
		return nil, r.Err
	}

	resp := &llm.GroundedResponse{Text: r.Text, Model: "stub"}
	for _, uri := range r.Sources {
		resp.Sources = append(resp.Sources, llm.Source{URI: uri})
	}
	return resp, nil
}

// GetModel returns a fixed model name.
func (s *Stub) GetModel(llm.ModelTier) string {
	return "stub"
}

// Close marks the stub closed.
func (s *Stub) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Requests returns a copy of every request seen so far.
func (s *Stub) Requests() []llm.GroundedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.GroundedRequest(nil), s.requests...)
}

// Calls returns how many requests were made.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Closed reports whether Close was called.
func (s *Stub) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
