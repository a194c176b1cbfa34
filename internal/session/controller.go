// Package session drives the send/receive lifecycle of one chat
// conversation: it guards against overlapping turns, relays transient
// status updates, and commits exactly one bot message per turn.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mulbot/mulchat/internal/model/chat"
	"github.com/mulbot/mulchat/internal/service/transcript"
	"github.com/mulbot/mulchat/internal/stream"
)

const (
	defaultStatusIcon = "💭"
	defaultStatusText = "Processing your question..."

	// fallbackAnswer is committed when the stream drains without a
	// terminal event.
	fallbackAnswer = "I'm sorry, I couldn't process your request. Please try again."

	// connectFallbackAnswer is committed when the request itself fails
	// before any frame arrives.
	connectFallbackAnswer = "I'm sorry, I'm having trouble connecting right now. " +
		"Please try again later or visit https://mul.edu.pk for more information."
)

// Streamer opens one streaming turn against the backend.
type Streamer interface {
	Stream(ctx context.Context, message, threadID string) (*stream.Decoder, error)
}

// UI is the set of abstract surface capabilities the controller drives.
// Implementations own presentation; the controller owns sequencing.
type UI interface {
	// ShowStatus replaces the transient status placeholder's text.
	ShowStatus(icon, text string)
	// ClearStatus removes the placeholder. Runs on every exit path.
	ClearStatus()
	// SetBusy toggles the send control.
	SetBusy(busy bool)
	// ClearInput empties the composer after a message is taken.
	ClearInput()
	// Focus returns input focus to the composer.
	Focus()
}

// Controller owns one conversation's session state. All fields are
// written by the controller only, never by the decoder or renderer.
type Controller struct {
	streamer   Streamer
	transcript *transcript.Store
	ui         UI
	log        zerolog.Logger

	mu       sync.Mutex
	busy     bool
	threadID string
}

// NewController wires the controller to its collaborators.
func NewController(streamer Streamer, store *transcript.Store, ui UI, log zerolog.Logger) *Controller {
	return &Controller{
		streamer:   streamer,
		transcript: store,
		ui:         ui,
		log:        log.With().Str("component", "session").Logger(),
	}
}

// Submit runs one complete turn: append the user message, stream status
// updates, then commit the terminal answer (or an apology) as a single
// bot message. Empty input and submits while a turn is in flight are
// silent no-ops; the busy-guard is a single slot, not a queue.
func (c *Controller) Submit(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if !c.begin() {
		c.log.Debug().Msg("submit rejected: turn already in flight")
		return
	}

	c.ui.SetBusy(true)
	c.transcript.Append(chat.RoleUser, text)
	c.ui.ClearInput()
	c.ui.ShowStatus(defaultStatusIcon, defaultStatusText)

	var answer string
	var haveAnswer bool

	// Exit actions run on every path out of the turn, so no failure can
	// leave the session stuck in the sending state.
	defer func() {
		c.ui.ClearStatus()
		if !haveAnswer {
			answer = fallbackAnswer
		}
		c.transcript.Append(chat.RoleBot, answer)
		c.ui.SetBusy(false)
		c.ui.Focus()
		c.finish()
	}()

	dec, err := c.streamer.Stream(ctx, text, c.ThreadID())
	if err != nil {
		c.log.Warn().Err(err).Msg("stream request failed")
		answer, haveAnswer = connectFallbackAnswer, true
		return
	}
	defer dec.Close()

	for {
		ev, err := dec.Next()
		if err != nil {
			// io.EOF and mid-stream read errors both end the turn; any
			// recorded terminal answer still gets committed.
			return
		}

		switch {
		case ev.Type == chat.EventStatus:
			c.ui.ShowStatus(ev.Icon, ev.Text)
		case ev.Terminal():
			// A later terminal event overwrites the pending answer, but
			// nothing is committed until the stream fully drains.
			answer, haveAnswer = ev.Response, true
			if ev.ThreadID != "" {
				c.setThreadID(ev.ThreadID)
			}
		}
	}
}

// ThreadID returns the conversation identifier, empty before the first
// successful turn. Once set it is never unset for the session's life.
func (c *Controller) ThreadID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.threadID
}

// Busy reports whether a turn is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Controller) finish() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *Controller) setThreadID(id string) {
	c.mu.Lock()
	c.threadID = id
	c.mu.Unlock()
}
