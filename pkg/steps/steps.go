package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/runner"
	"github.com/aretw0/clui/pkg/session"
)

// bound remembers the handle a step was last rendered with.
type bound struct {
	handle *session.Handle
}

func (b *bound) Bind(h *session.Handle) {
	b.handle = h
}

// Handle returns the handle the step was last bound to.
func (b *bound) Handle() *session.Handle {
	return b.handle
}

// Message displays markdown content and advances immediately.
type Message struct {
	bound
	Text   string
	Memory *Memory
}

// NewMessage creates a message step.
func NewMessage(text string, mem *Memory) *Message {
	return &Message{Text: text, Memory: mem}
}

func (m *Message) Kind() string   { return domain.KindMessage }
func (m *Message) String() string { return m.Memory.Interpolate(m.Text) }

// Activate renders the message and reveals the next step.
func (m *Message) Activate(ctx context.Context, io runner.IOHandler) error {
	if err := io.Output(ctx, m.String()); err != nil {
		return err
	}
	m.handle.Next()
	return nil
}

// Replay renders the message without advancing.
func (m *Message) Replay(ctx context.Context, io runner.IOHandler) error {
	return io.Output(ctx, m.String())
}

// FollowUp builds the steps a prompt appends for a given answer.
// It is called on every matching answer so each insertion gets fresh steps.
type FollowUp func() ([]any, error)

// Prompt asks a question and stores the answer under Key.
type Prompt struct {
	bound
	Key     string
	Text    string
	Default string
	Memory  *Memory

	// FollowUps maps answers to the steps appended after them.
	// domain.AnyAnswer matches when no exact answer does.
	// Follow-ups are appended once per mount of the owning session, on the
	// first answer after it.
	FollowUps map[string]FollowUp

	inserted bool
}

// NewPrompt creates a prompt step.
func NewPrompt(key, text string, mem *Memory) *Prompt {
	return &Prompt{Key: key, Text: text, Memory: mem}
}

func (p *Prompt) Kind() string   { return domain.KindPrompt }
func (p *Prompt) String() string { return p.Memory.Interpolate(p.Text) }

// Activate asks the question, records the answer, appends follow-ups and
// reveals the next step.
func (p *Prompt) Activate(ctx context.Context, io runner.IOHandler) error {
	question := p.String()
	if p.Default != "" {
		question = fmt.Sprintf("%s (%s)", question, p.Default)
	}
	answer, err := io.Input(ctx, question)
	if err != nil {
		return err
	}
	if answer == "" {
		answer = p.Default
	}
	p.Memory.Set(p.Key, answer)

	if !p.inserted {
		units, err := p.followUp(answer)
		if err != nil {
			return fmt.Errorf("follow-ups for %q: %w", answer, err)
		}
		if len(units) > 0 {
			p.handle.Insert(units...)
			p.inserted = true
		}
	}
	p.handle.Next()
	return nil
}

// Remount rearms the follow-ups for a new mount of the owning session.
func (p *Prompt) Remount() {
	p.inserted = false
}

// Replay shows the question with the stored answer, if any.
func (p *Prompt) Replay(ctx context.Context, io runner.IOHandler) error {
	return replayAnswer(ctx, io, p.String(), p.Memory, p.Key)
}

func (p *Prompt) followUp(answer string) ([]any, error) {
	if fn, ok := p.FollowUps[answer]; ok && fn != nil {
		return fn()
	}
	if fn, ok := p.FollowUps[domain.AnyAnswer]; ok && fn != nil {
		return fn()
	}
	return nil, nil
}

// Confirm asks a yes/no question. "yes" advances; "no" rewinds the session when
// ResetOnNo is set and advances otherwise. The answer is stored as "yes" or "no".
type Confirm struct {
	bound
	Key       string
	Text      string
	ResetOnNo bool
	Memory    *Memory
}

// NewConfirm creates a confirm step.
func NewConfirm(text string, resetOnNo bool, mem *Memory) *Confirm {
	return &Confirm{Text: text, ResetOnNo: resetOnNo, Memory: mem}
}

func (c *Confirm) Kind() string   { return domain.KindConfirm }
func (c *Confirm) String() string { return c.Memory.Interpolate(c.Text) }

// Activate asks until it gets a yes/no answer, then drives the session.
func (c *Confirm) Activate(ctx context.Context, io runner.IOHandler) error {
	question := c.String() + " [y/n]"
	for {
		answer, err := io.Input(ctx, question)
		if err != nil {
			return err
		}
		yes, ok := parseYesNo(answer)
		if !ok {
			if err := io.SystemOutput(ctx, "Please answer yes or no."); err != nil {
				return err
			}
			continue
		}
		if yes {
			c.Memory.Set(c.Key, "yes")
			c.handle.Next()
			return nil
		}
		c.Memory.Set(c.Key, "no")
		if c.ResetOnNo {
			c.handle.Reset()
		} else {
			c.handle.Next()
		}
		return nil
	}
}

// Replay shows the question with the stored answer, if any.
func (c *Confirm) Replay(ctx context.Context, io runner.IOHandler) error {
	return replayAnswer(ctx, io, c.String(), c.Memory, c.Key)
}

func replayAnswer(ctx context.Context, io runner.IOHandler, question string, mem *Memory, key string) error {
	if answer, ok := mem.Get(key); ok {
		question = fmt.Sprintf("%s\n> %s", question, answer)
	}
	return io.Output(ctx, question)
}

func parseYesNo(answer string) (yes bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "true", "1":
		return true, true
	case "n", "no", "false", "0":
		return false, true
	}
	return false, false
}
