package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSE event names for the streaming recommendation endpoint
const (
	EventLoading  = "loading"
	EventComplete = "complete"
	EventError    = "error"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteLoading announces that the request was accepted and is in flight.
func (s *SSEWriter) WriteLoading() {
	s.WriteEvent(EventLoading, map[string]string{"status": "loading"}) //nolint:errcheck
}

// WriteError sends an error event with an empty batch
func (s *SSEWriter) WriteError(err error) {
	s.WriteEvent(EventError, failureFor(err)) //nolint:errcheck
}

// WriteComplete sends a completion event
func (s *SSEWriter) WriteComplete(resp recommendationResponse) {
	s.WriteEvent(EventComplete, resp) //nolint:errcheck
}
