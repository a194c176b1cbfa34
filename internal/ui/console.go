// Package ui renders the transcript and the transient status line on a
// terminal. It implements the session controller's UI capabilities and
// the transcript sink, keeping the core free of any toolkit types.
package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/mulbot/mulchat/internal/model/chat"
)

const clearLine = "\r\x1b[K"

var (
	userLabel   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render("You")
	botLabel    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Render("MUL Bot")
	timeStyle   = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

// Console writes the conversation to w. Safe for the single-controller
// call pattern; a mutex keeps status and message writes from interleaving.
type Console struct {
	mu         sync.Mutex
	w          io.Writer
	statusLive bool
}

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// MessageAppended prints a committed transcript message.
func (c *Console) MessageAppended(m chat.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.wipeStatusLocked()
	label := botLabel
	if m.Role == chat.RoleUser {
		label = userLabel
	}
	fmt.Fprintf(c.w, "%s %s  %s\n", timeStyle.Render(m.DisplayTime()), label, m.Content)
}

// ShowStatus replaces the transient status line.
func (c *Console) ShowStatus(icon, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprint(c.w, clearLine+statusStyle.Render(icon+" "+text))
	c.statusLive = true
}

// ClearStatus removes the transient status line.
func (c *Console) ClearStatus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wipeStatusLocked()
}

// SetBusy is a no-op on the console; the blocking read loop already
// serializes input while a turn is in flight.
func (c *Console) SetBusy(bool) {}

// ClearInput is a no-op: the line reader consumes input on submit.
func (c *Console) ClearInput() {}

// Focus is a no-op on the console.
func (c *Console) Focus() {}

func (c *Console) wipeStatusLocked() {
	if c.statusLive {
		fmt.Fprint(c.w, clearLine)
		c.statusLive = false
	}
}
