package chat

// EventType discriminates the frames the streaming endpoint emits.
type EventType string

const (
	EventStatus   EventType = "status"
	EventResponse EventType = "response"
	EventError    EventType = "error"
)

// Event is one decoded frame from the streaming chat endpoint.
// Status events carry Icon/Text; response and error events carry
// Response/ThreadID.
type Event struct {
	Type     EventType `json:"type"`
	Icon     string    `json:"icon,omitempty"`
	Text     string    `json:"text,omitempty"`
	Node     string    `json:"node,omitempty"`
	Response string    `json:"response,omitempty"`
	ThreadID string    `json:"thread_id,omitempty"`
	Cached   bool      `json:"cached,omitempty"`
}

// Terminal reports whether the event ends the turn. Response and error
// events are handled identically downstream: both just set the answer
// to show.
func (e Event) Terminal() bool {
	return e.Type == EventResponse || e.Type == EventError
}

// Known reports whether the event type is part of the wire contract.
// Anything else (keep-alive frames, the trailing "done" marker) is
// skipped by the decoder.
func (e Event) Known() bool {
	switch e.Type {
	case EventStatus, EventResponse, EventError:
		return true
	}
	return false
}

// SendRequest is the body of POST /api/chat and /api/chat/stream.
// ThreadID is null on the first turn of a conversation.
type SendRequest struct {
	Message  string  `json:"message"`
	ThreadID *string `json:"thread_id"`
}

// SendResponse is the body returned by the non-streaming endpoint.
type SendResponse struct {
	Response string `json:"response"`
	ThreadID string `json:"thread_id"`
	Cached   bool   `json:"cached,omitempty"`
}
