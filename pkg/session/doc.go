/*
Package session implements the sequential reveal state machine at the heart of clui.

A Session holds an ordered, append-only sequence of steps and a cursor. Only the
prefix of the sequence up to the cursor is visible. The cursor moves forward one
position per Next call, rewinds to zero on Reset, and new steps can be appended at
runtime with Insert. Every visible step is bound to the same Handle for a given
render, so a step can drive its own completion.

When Next is called on an exhausted session, the completion callback (WithOnDone)
fires. Without one, the call is forwarded to the parent handle, which lets nested
sessions compose: finishing a child advances its parent.

# Key Components

  - Normalize: the step registry, flattening loosely authored input into a Sequence.
  - Session: the cursor state machine and the owner of the Sequence.
  - Handle: the control object handed to visible steps.
  - Guard: serializes access for hosts that drive a session from several goroutines.

# Usage

	s := session.New([]any{greeting, question},
		session.WithOnDone(func() { fmt.Println("bye") }),
	)

	s.Render(func(e session.Entry) {
		fmt.Printf("%d: %v\n", e.Position, e.Step)
	})
	s.Handle().Next()
*/
package session
