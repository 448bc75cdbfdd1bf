package runner_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/clui/pkg/runner"
	"github.com/aretw0/clui/pkg/session"
	"github.com/aretw0/clui/pkg/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTextRunner(input string, out *bytes.Buffer) *runner.Runner {
	return runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(input), out)))
}

func TestRunner_LinearFlow(t *testing.T) {
	mem := steps.NewMemory()
	done := 0
	s := session.New([]any{
		steps.NewMessage("Welcome", mem),
		steps.NewPrompt("name", "What is your name?", mem),
		steps.NewMessage("Nice to meet you, {{ .name }}", mem),
	}, session.WithOnDone(func() { done++ }))

	out := &bytes.Buffer{}
	require.NoError(t, newTextRunner("Ada\n", out).Run(context.Background(), s))

	assert.Equal(t, 1, done)
	assert.Equal(t, 2, s.CurrentIndex())
	assert.Contains(t, out.String(), "Welcome\nWhat is your name?\n> Nice to meet you, Ada\n")
}

func TestRunner_NestedSessionAdvancesParent(t *testing.T) {
	mem := steps.NewMemory()
	done := 0
	child := session.New([]any{
		steps.NewMessage("X", mem),
		steps.NewMessage("Y", mem),
	}, session.WithName("child"))
	parent := session.New([]any{
		steps.NewMessage("A", mem),
		child,
		steps.NewMessage("C", mem),
	}, session.WithOnDone(func() { done++ }))

	out := &bytes.Buffer{}
	require.NoError(t, newTextRunner("", out).Run(context.Background(), parent))

	assert.Equal(t, "A\nX\nY\nC\n", out.String())
	assert.Equal(t, 1, done)
	assert.Equal(t, 1, child.CurrentIndex())
}

func TestRunner_ResetReplaysTranscript(t *testing.T) {
	mem := steps.NewMemory()
	s := session.New([]any{
		steps.NewMessage("intro", mem),
		steps.NewConfirm("Ready?", true, mem),
		steps.NewMessage("go", mem),
	})

	out := &bytes.Buffer{}
	require.NoError(t, newTextRunner("n\ny\n", out).Run(context.Background(), s))

	assert.Equal(t, 2, strings.Count(out.String(), "intro"))
	assert.Equal(t, 1, strings.Count(out.String(), "go\n"))
	assert.True(t, s.Done())
}

func TestRunner_PromptFollowUps(t *testing.T) {
	mem := steps.NewMemory()
	p := steps.NewPrompt("pet", "Cat or dog?", mem)
	p.FollowUps = map[string]steps.FollowUp{
		"cat": func() ([]any, error) { return []any{steps.NewMessage("Meow", mem)}, nil },
		"dog": func() ([]any, error) { return []any{steps.NewMessage("Woof", mem)}, nil },
	}
	s := session.New([]any{p})

	out := &bytes.Buffer{}
	require.NoError(t, newTextRunner("dog\n", out).Run(context.Background(), s))

	assert.Equal(t, 2, s.Len())
	assert.Contains(t, out.String(), "Woof")
	assert.NotContains(t, out.String(), "Meow")
}

func TestRunner_NestedFollowUpsAfterParentReset(t *testing.T) {
	mem := steps.NewMemory()
	p := steps.NewPrompt("pet", "Pet?", mem)
	p.FollowUps = map[string]steps.FollowUp{
		"*": func() ([]any, error) { return []any{steps.NewMessage("Noted", mem)}, nil },
	}
	child := session.New([]any{p}, session.WithName("pets"))
	parent := session.New([]any{child, steps.NewConfirm("Done?", true, mem)})

	out := &bytes.Buffer{}
	require.NoError(t, newTextRunner("cat\nn\ncat\ny\n", out).Run(context.Background(), parent))

	assert.Equal(t, 2, strings.Count(out.String(), "Noted"), out.String())
	assert.Equal(t, 2, child.Len())
	assert.Equal(t, 1, parent.CurrentIndex())
}

func TestRunner_ClosedInputEndsRun(t *testing.T) {
	mem := steps.NewMemory()
	s := session.New([]any{
		steps.NewPrompt("q", "Anything?", mem),
		steps.NewMessage("never", mem),
	})

	out := &bytes.Buffer{}
	require.NoError(t, newTextRunner("", out).Run(context.Background(), s))

	assert.Equal(t, 0, s.CurrentIndex())
	assert.NotContains(t, out.String(), "never")
}

func TestRunner_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := session.New([]any{steps.NewMessage("hi", nil)})
	err := newTextRunner("", &bytes.Buffer{}).Run(ctx, s)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_NilSession(t *testing.T) {
	assert.Error(t, newTextRunner("", &bytes.Buffer{}).Run(context.Background(), nil))
}

type plainStep struct{ binds int }

func (p *plainStep) Bind(*session.Handle) { p.binds++ }

func TestRunner_AutoAdvance(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		s := session.New([]any{&plainStep{}, &plainStep{}, &plainStep{}})
		require.NoError(t, newTextRunner("", &bytes.Buffer{}).Run(context.Background(), s))
		assert.Equal(t, 2, s.CurrentIndex())
	})

	t.Run("disabled", func(t *testing.T) {
		s := session.New([]any{&plainStep{}, &plainStep{}})
		r := runner.NewRunner(
			runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(""), &bytes.Buffer{})),
			runner.WithAutoAdvance(false),
		)
		require.NoError(t, r.Run(context.Background(), s))
		assert.Equal(t, 0, s.CurrentIndex())
	})
}

type failingStep struct{ plainStep }

func (f *failingStep) Activate(context.Context, runner.IOHandler) error {
	return errors.New("boom")
}

func TestRunner_ActivationErrorIsWrapped(t *testing.T) {
	s := session.New([]any{&failingStep{}})
	err := newTextRunner("", &bytes.Buffer{}).Run(context.Background(), s)
	require.Error(t, err)
	assert.Equal(t, "step 0: boom", err.Error())
}

func TestRunner_InitialIndexReplaysWithoutAdvancing(t *testing.T) {
	mem := steps.NewMemory()
	mem.Set("name", "Ada")
	done := 0
	s := session.New([]any{
		steps.NewMessage("old", mem),
		steps.NewPrompt("name", "Name?", mem),
		steps.NewMessage("new", mem),
	}, session.WithInitialIndex(2), session.WithOnDone(func() { done++ }))

	out := &bytes.Buffer{}
	require.NoError(t, newTextRunner("", out).Run(context.Background(), s))

	assert.Equal(t, "old\nName?\n> Ada\nnew\n", out.String())
	assert.Equal(t, 2, s.CurrentIndex())
	assert.Equal(t, 1, done)
}
