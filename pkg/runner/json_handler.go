package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
)

// JSON message types written by JSONHandler, one object per line.
const (
	MessageContent = "content"
	MessagePrompt  = "prompt"
	MessageSystem  = "system"
)

// Message is a single NDJSON line emitted by JSONHandler.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
// Answers are read one per line, either as a JSON string or as raw text.
type JSONHandler struct {
	Reader    *bufio.Reader
	Encoder   *json.Encoder
	Sanitizer Sanitizer
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:    bufio.NewReader(r),
		Encoder:   json.NewEncoder(w),
		Sanitizer: DefaultSanitizer(),
	}
}

func (h *JSONHandler) Output(ctx context.Context, content string) error {
	return h.Encoder.Encode(Message{Type: MessageContent, Text: content})
}

func (h *JSONHandler) Input(ctx context.Context, prompt string) (string, error) {
	if err := h.Encoder.Encode(Message{Type: MessagePrompt, Text: prompt}); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		text = val
	}
	return h.Sanitizer.Clean(text)
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Message{Type: MessageSystem, Text: msg})
}
