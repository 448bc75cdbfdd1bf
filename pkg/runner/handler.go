package runner

import "context"

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents step content (markdown) to the user.
	Output(ctx context.Context, content string) error

	// Input presents a question and reads the answer.
	// Answers are returned already sanitized.
	Input(ctx context.Context, prompt string) (string, error)

	// SystemOutput presents a meta-message (validation hints, status updates).
	// This is distinct from content rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// Activator is implemented by steps that do work once they become visible.
// The step is expected to call Next (or Reset) on the handle it was bound to
// when its work is finished.
type Activator interface {
	Activate(ctx context.Context, io IOHandler) error
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Replayer is implemented by steps that can be shown again without doing their
// work. Steps revealed behind the cursor (for instance by an initial index) are
// replayed instead of activated; steps that are not Replayers are skipped.
type Replayer interface {
	Replay(ctx context.Context, io IOHandler) error
}
