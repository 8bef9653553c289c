package stream

import (
	"bufio"
	"io"
	"strings"
)

// wireEvent is one decoded server-sent event: the event name and the raw,
// still-unparsed data payload.
type wireEvent struct {
	name string
	data string
}

// readEvents decodes the SSE wire format from r and calls emit for every
// complete event. It returns when the stream ends or the read fails; the
// returned error is the transport error (io.EOF for a clean server close).
//
// The format is line-based: "event:" and "data:" fields accumulate until a
// blank line terminates the event. Comment lines (leading ':') and unknown
// fields are skipped per the SSE spec. Events with no data are still emitted
// (the backend's "connected" handshake carries a name and a one-line body).
func readEvents(r io.Reader, emit func(ev wireEvent)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var name string
	var data strings.Builder

	flush := func() {
		if name == "" && data.Len() == 0 {
			return
		}
		emit(wireEvent{name: name, data: data.String()})
		name = ""
		data.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, ":"):
			// comment / keep-alive
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}

	flush()

	if err := scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}
