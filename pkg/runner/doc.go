/*
Package runner drives a reveal session from a terminal (or any line-based stream).

It acts as the host of a session.Session: it renders the visible prefix, activates
each newly revealed step exactly once and lets the steps call Next, Reset and Insert
through their handle. Nested sessions are driven recursively, so a finished child
hands control back to its parent.

# Key Components

  - Runner: The loop that activates revealed steps until the flow stops growing.
  - IOHandler: Decouples how steps talk to the user (Text, JSON).
  - Activator: Implemented by interactive steps (see package steps).
  - Replayer: Shows steps revealed behind the cursor without re-running them.
  - SanitizeInput: The input policy applied to every answer.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx, sess); err != nil {
		log.Fatal(err)
	}
*/
package runner
