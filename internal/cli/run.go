package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/clui"
	"github.com/aretw0/clui/internal/presentation/tui"
	"github.com/aretw0/clui/pkg/observability"
	"github.com/aretw0/clui/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Path  string
	Debug bool
	// Plain disables the banner and markdown rendering even on a terminal.
	Plain bool
	// JSON switches to NDJSON input/output.
	JSON bool

	Stdin  io.Reader
	Stdout io.Writer
}

func (o RunOptions) streams() (io.Reader, io.Writer) {
	in, out := o.Stdin, o.Stdout
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return in, out
}

// rich reports whether output gets the banner and glamour rendering.
func (o RunOptions) rich(out io.Writer) bool {
	return !o.Plain && !o.JSON && isTerminal(out)
}

// RunSession loads the script at opts.Path and converses over the terminal until
// the flow is finished, input is closed or ctx is cancelled.
func RunSession(ctx context.Context, opts RunOptions) error {
	if opts.JSON && opts.Plain {
		return fmt.Errorf("--json and --plain cannot be used together")
	}
	logger := createLogger(opts.Debug)
	in, out := opts.streams()

	finished := false
	engOpts := []clui.Option{
		clui.WithLogger(logger),
		clui.WithOnDone(func() { finished = true }),
	}
	if opts.Debug {
		engOpts = append(engOpts, clui.WithObserver(observability.LogObserver(logger)))
	}

	eng, err := clui.New(opts.Path, engOpts...)
	if err != nil {
		return fmt.Errorf("error initializing engine: %w", err)
	}

	var handler runner.IOHandler
	switch {
	case opts.JSON:
		handler = runner.NewJSONHandler(in, out)
	case opts.rich(out):
		tui.PrintBanner(out, clui.Version)
		handler = runner.NewTextHandler(in, out, runner.WithTextHandlerRenderer(tui.NewRenderer()))
	default:
		handler = runner.NewTextHandler(in, out)
	}

	logger.Info("Session Started", "script", eng.Name, "steps", eng.Session().Len())
	runErr := eng.Run(ctx, runner.WithInputHandler(handler))

	if !opts.JSON {
		logCompletion(ctx, out, eng, finished, runErr)
	}
	return handleExecutionError(runErr)
}

func logCompletion(ctx context.Context, w io.Writer, eng *clui.Engine, finished bool, err error) {
	snap := eng.Snapshot()
	switch {
	case err != nil && isInterrupted(err):
		if sc, ok := ctx.(*SignalContext); ok && sc.Signal() == os.Interrupt {
			fmt.Fprint(w, "[CTRL+C]\n")
		}
		printSystemMessage(w, "Interrupted at step %d of '%s'.", snap.CurrentIndex+1, eng.Name)
	case err != nil:
	case finished:
		printSystemMessage(w, "Finished '%s'.", eng.Name)
	default:
		printSystemMessage(w, "Stopped at step %d of '%s'.", snap.CurrentIndex+1, eng.Name)
	}
}
