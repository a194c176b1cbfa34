// Package transcript holds the visible conversation: an append-only,
// arrival-ordered sequence of rendered messages.
package transcript

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mulbot/mulchat/internal/markdown"
	"github.com/mulbot/mulchat/internal/model/chat"
)

// Sink receives each message as it is appended. Display concerns
// (scrolling the newest message into view, styling) belong to the sink,
// which runs after the message is committed so layout state is settled.
type Sink interface {
	MessageAppended(chat.Message)
}

// Store is the in-memory transcript for one page session. Messages are
// immutable once appended.
type Store struct {
	mu       sync.RWMutex
	messages []chat.Message
	sinks    []Sink

	now func() time.Time
}

// NewStore bootstraps an empty transcript.
func NewStore() *Store {
	return &Store{
		messages: make([]chat.Message, 0, 16),
		now:      time.Now,
	}
}

// Subscribe registers a sink for future appends.
func (s *Store) Subscribe(sink Sink) {
	s.mu.Lock()
	s.sinks = append(s.sinks, sink)
	s.mu.Unlock()
}

// Append stamps, renders and stores a message, then notifies sinks in
// registration order. Bot content goes through the markdown renderer;
// user content is only ever escaped, never interpreted.
func (s *Store) Append(role chat.Role, content string) chat.Message {
	var html string
	if role == chat.RoleBot {
		html = markdown.Render(content)
	} else {
		html = markdown.Escape(content)
	}

	s.mu.Lock()
	msg := chat.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		HTML:      html,
		CreatedAt: s.now(),
	}
	s.messages = append(s.messages, msg)
	sinks := make([]Sink, len(s.sinks))
	copy(sinks, s.sinks)
	s.mu.Unlock()

	for _, sink := range sinks {
		sink.MessageAppended(msg)
	}
	return msg
}

// Messages returns a copy of the transcript in arrival order.
func (s *Store) Messages() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Len reports the number of committed messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
