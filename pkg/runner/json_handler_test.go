package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []Message {
	t.Helper()
	var msgs []Message
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m Message
		require.NoError(t, dec.Decode(&m))
		msgs = append(msgs, m)
	}
	return msgs
}

func TestJSONHandler_Roundtrip(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewJSONHandler(strings.NewReader("\"Ada\"\nplain text\n"), out)
	ctx := context.Background()

	require.NoError(t, h.Output(ctx, "# Welcome"))
	name, err := h.Input(ctx, "Name?")
	require.NoError(t, err)
	raw, err := h.Input(ctx, "Anything?")
	require.NoError(t, err)
	require.NoError(t, h.SystemOutput(ctx, "bye"))

	assert.Equal(t, "Ada", name)
	assert.Equal(t, "plain text", raw)
	assert.Equal(t, []Message{
		{Type: MessageContent, Text: "# Welcome"},
		{Type: MessagePrompt, Text: "Name?"},
		{Type: MessagePrompt, Text: "Anything?"},
		{Type: MessageSystem, Text: "bye"},
	}, decodeLines(t, out))
}

func TestJSONHandler_RejectsOversizedInput(t *testing.T) {
	h := NewJSONHandler(strings.NewReader("0123456789\n"), &bytes.Buffer{})
	h.Sanitizer = Sanitizer{MaxSize: 4}

	_, err := h.Input(context.Background(), "")
	assert.ErrorIs(t, err, ErrInputTooLarge)
}
