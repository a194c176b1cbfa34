package stream

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mulbot/mulchat/internal/model/chat"
)

// chunkReader yields the configured chunks one Read at a time, so tests
// can force frame boundaries to land mid-line.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func drain(t *testing.T, d *Decoder) []chat.Event {
	t.Helper()
	var events []chat.Event
	for {
		ev, err := d.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestDecoderParsesOrderedEvents(t *testing.T) {
	body := "data: {\"type\":\"status\",\"icon\":\"🔍\",\"text\":\"Searching\"}\n" +
		"data: {\"type\":\"response\",\"response\":\"Hi there\",\"thread_id\":\"abc123\"}\n"

	events := drain(t, NewDecoder(strings.NewReader(body)))

	require.Len(t, events, 2)
	assert.Equal(t, chat.EventStatus, events[0].Type)
	assert.Equal(t, "🔍", events[0].Icon)
	assert.Equal(t, "Searching", events[0].Text)
	assert.Equal(t, chat.EventResponse, events[1].Type)
	assert.Equal(t, "Hi there", events[1].Response)
	assert.Equal(t, "abc123", events[1].ThreadID)
}

func TestDecoderFrameSplitAcrossChunks(t *testing.T) {
	r := &chunkReader{chunks: []string{
		`data: {"typ`,
		"e\":\"status\",\"icon\":\"🔍\",\"text\":\"Searching\"}\n",
	}}

	events := drain(t, NewDecoder(r))

	require.Len(t, events, 1)
	assert.Equal(t, chat.EventStatus, events[0].Type)
	assert.Equal(t, "Searching", events[0].Text)
}

func TestDecoderMultiByteRuneSplitAcrossChunks(t *testing.T) {
	frame := "data: {\"type\":\"status\",\"icon\":\"🧠\",\"text\":\"Understanding\"}\n"
	cut := strings.Index(frame, "🧠") + 2 // mid-rune
	r := &chunkReader{chunks: []string{frame[:cut], frame[cut:]}}

	events := drain(t, NewDecoder(r))

	require.Len(t, events, 1)
	assert.Equal(t, "🧠", events[0].Icon)
}

func TestDecoderSkipsMalformedFrames(t *testing.T) {
	body := "data: {not json}\n" +
		"data: {\"type\":\"response\",\"response\":\"ok\",\"thread_id\":\"t1\"}\n"

	events := drain(t, NewDecoder(strings.NewReader(body)))

	require.Len(t, events, 1)
	assert.Equal(t, "ok", events[0].Response)
}

func TestDecoderIgnoresBlankAndUnprefixedLines(t *testing.T) {
	body := "\n\n: keep-alive\nretry: 100\n" +
		"data: {\"type\":\"status\",\"icon\":\"✍️\",\"text\":\"Generating\"}\n\n"

	events := drain(t, NewDecoder(strings.NewReader(body)))

	require.Len(t, events, 1)
	assert.Equal(t, chat.EventStatus, events[0].Type)
}

func TestDecoderSkipsUnknownEventTypes(t *testing.T) {
	body := "data: {\"type\":\"done\"}\n" +
		"data: {\"type\":\"heartbeat\"}\n"

	events := drain(t, NewDecoder(strings.NewReader(body)))
	assert.Empty(t, events)
}

func TestDecoderDiscardsTrailingPartialLine(t *testing.T) {
	body := "data: {\"type\":\"status\",\"icon\":\"🛡️\",\"text\":\"Preparing\"}\n" +
		`data: {"type":"response","resp` // no newline, stream dies here

	events := drain(t, NewDecoder(strings.NewReader(body)))

	require.Len(t, events, 1)
	assert.Equal(t, chat.EventStatus, events[0].Type)
}

func TestDecoderStaysExhaustedAfterEOF(t *testing.T) {
	d := NewDecoder(strings.NewReader(""))
	_, err := d.Next()
	assert.Equal(t, io.EOF, err)
	_, err = d.Next()
	assert.Equal(t, io.EOF, err)
}

func TestDecoderHandlesCRLF(t *testing.T) {
	body := "data: {\"type\":\"status\",\"icon\":\"⚡\",\"text\":\"Retrieved from cache...\"}\r\n"

	events := drain(t, NewDecoder(strings.NewReader(body)))

	require.Len(t, events, 1)
	assert.Equal(t, "Retrieved from cache...", events[0].Text)
}
