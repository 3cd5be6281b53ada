package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSE event names used by the chat stream
const (
	eventMessage  = "message"
	eventTyping   = "typing"
	eventError    = "error"
	eventComplete = "complete"
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

// WriteError sends an error event
func (s *SSEWriter) WriteError(err error) {
	info := errorInfo(err)
	s.WriteEvent(eventError, map[string]string{ //nolint:errcheck
		"error": info.Message,
		"kind":  info.Kind,
	})
}

// WriteComplete sends a completion event
func (s *SSEWriter) WriteComplete(viewID, state string) {
	s.WriteEvent(eventComplete, map[string]string{ //nolint:errcheck
		"session_id": viewID,
		"state":      state,
	})
}
