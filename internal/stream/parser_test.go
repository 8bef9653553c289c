// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, wire string) []wireEvent {
	t.Helper()
	var events []wireEvent
	err := readEvents(strings.NewReader(wire), func(ev wireEvent) {
		events = append(events, ev)
	})
	require.ErrorIs(t, err, io.EOF)
	return events
}

func TestReadEvents_SingleEvent(t *testing.T) {
	events := collectEvents(t, "event: item_checked\ndata: {\"list_id\":\"l1\"}\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "item_checked", events[0].name)
	assert.Equal(t, `{"list_id":"l1"}`, events[0].data)
}

func TestReadEvents_MultipleEvents(t *testing.T) {
	wire := "event: connected\ndata: {}\n\n" +
		"event: item_created\ndata: {\"list_id\":\"l1\"}\n\n" +
		"event: item_deleted\ndata: {\"list_id\":\"l1\"}\n\n"

	events := collectEvents(t, wire)

	require.Len(t, events, 3)
	assert.Equal(t, "connected", events[0].name)
	assert.Equal(t, "item_created", events[1].name)
	assert.Equal(t, "item_deleted", events[2].name)
}

func TestReadEvents_MultiLineDataJoinsWithNewline(t *testing.T) {
	events := collectEvents(t, "event: item_updated\ndata: line one\ndata: line two\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "line one\nline two", events[0].data)
}

func TestReadEvents_SkipsCommentsAndKeepAlives(t *testing.T) {
	wire := ": keep-alive\n\n" +
		"event: item_checked\n: mid-event comment\ndata: {}\n\n"

	events := collectEvents(t, wire)

	require.Len(t, events, 1)
	assert.Equal(t, "item_checked", events[0].name)
}

func TestReadEvents_FlushesTrailingEventAtEOF(t *testing.T) {
	// No terminating blank line before the stream ends.
	events := collectEvents(t, "event: item_checked\ndata: {}")

	require.Len(t, events, 1)
	assert.Equal(t, "item_checked", events[0].name)
}

func TestReadEvents_EmptyStream_NoEvents(t *testing.T) {
	events := collectEvents(t, "")
	assert.Empty(t, events)
}

func TestReadEvents_ReturnsTransportError(t *testing.T) {
	err := readEvents(failingReader{}, func(wireEvent) {})
	assert.ErrorIs(t, err, errConnReset)
}

// failingReader fails immediately, standing in for a dropped connection.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errConnReset
}

var errConnReset = errors.New("connection reset by peer")
