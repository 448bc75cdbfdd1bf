package runner

import "log/slog"

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithAutoAdvance controls whether steps that are not Activators advance the
// session on their own when revealed (default true).
func WithAutoAdvance(enabled bool) Option {
	return func(r *Runner) {
		r.AutoAdvance = enabled
	}
}
