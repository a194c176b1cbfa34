// Package stream decodes the newline-delimited event frames the chat
// backend emits. The decoder is a pull-based iterator over a byte
// stream: callers keep asking for the next event until io.EOF.
package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/mulbot/mulchat/internal/model/chat"
)

// framePrefix marks a line that carries an event payload. Lines without
// it (blank keep-alives, comments) are ignored.
var framePrefix = []byte("data: ")

// Decoder reassembles line frames from an io.Reader and parses them into
// chat events. It is single-use and not safe for concurrent callers.
type Decoder struct {
	br  *bufio.Reader
	src io.Reader
	err error
}

// NewDecoder wraps r. The reader is buffered internally, so frames split
// across read boundaries (including mid-rune) reassemble correctly.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{br: bufio.NewReader(r), src: r}
}

// Next returns the next well-formed event. Malformed frames and unknown
// event types are skipped rather than surfaced: one bad frame must never
// abort the session. Returns io.EOF when the source is exhausted; a
// trailing partial line at end-of-stream is discarded.
func (d *Decoder) Next() (chat.Event, error) {
	if d.err != nil {
		return chat.Event{}, d.err
	}

	for {
		line, err := d.br.ReadBytes('\n')
		if err != nil {
			// A non-terminated trailing fragment is not a frame.
			d.err = err
			if err != io.EOF {
				return chat.Event{}, err
			}
			return chat.Event{}, io.EOF
		}

		line = bytes.TrimRight(line, "\r\n")
		if !bytes.HasPrefix(line, framePrefix) {
			continue
		}

		var ev chat.Event
		if err := json.Unmarshal(line[len(framePrefix):], &ev); err != nil {
			continue
		}
		if !ev.Known() {
			continue
		}
		return ev, nil
	}
}

// Close releases the underlying source when it is closeable, e.g. an
// HTTP response body.
func (d *Decoder) Close() error {
	if c, ok := d.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
