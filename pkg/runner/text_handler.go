package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// TextHandler implements the standard line-based interface.
type TextHandler struct {
	Reader    *bufio.Reader
	Writer    io.Writer
	Renderer  ContentRenderer
	Sanitizer Sanitizer

	// PromptMarker is written before every read.
	PromptMarker string

	lines     chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerSanitizer overrides the input policy.
func WithTextHandlerSanitizer(s Sanitizer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Sanitizer = s
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader:       bufio.NewReader(r),
		Writer:       w,
		Sanitizer:    DefaultSanitizer(),
		PromptMarker: "> ",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// pump reads lines in the background so Input can honor context cancellation.
func (h *TextHandler) pump() {
	defer close(h.lines)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.lines <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.lines <- inputResult{err: err}
			}
			return
		}
	}
}

func (h *TextHandler) render(content string) string {
	if h.Renderer == nil {
		return content
	}
	rendered, err := h.Renderer(content)
	if err != nil {
		return content
	}
	return rendered
}

// Output renders content and writes it on its own line.
func (h *TextHandler) Output(ctx context.Context, content string) error {
	_, err := fmt.Fprintln(h.Writer, strings.TrimSpace(h.render(content)))
	return err
}

// Input writes the prompt and waits for the next acceptable line.
// Rejected lines are reported and asked again.
func (h *TextHandler) Input(ctx context.Context, prompt string) (string, error) {
	h.startOnce.Do(func() {
		h.lines = make(chan inputResult)
		go h.pump()
	})

	if prompt != "" {
		if err := h.Output(ctx, prompt); err != nil {
			return "", err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(h.Writer, h.PromptMarker)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.lines:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := h.Sanitizer.Clean(res.text)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

// SystemOutput writes a meta-message with a "[System]" prefix.
func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return err
}
