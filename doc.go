/*
Package clui builds conversational command-line flows that reveal one step at a time.

A flow is a script: an ordered list of steps (messages, prompts, confirmations and
nested sub-flows). clui compiles it into a session, a cursor state machine that
shows only the steps up to the cursor. Each visible step receives a control handle
to advance, rewind or extend the flow, so the steps themselves drive the
conversation.

# Concept

The session owns the sequence and the cursor; steps own their behaviour. A prompt
advances once answered, a confirmation can rewind, and any step can append
follow-ups at the end of the flow. A nested session that runs out of steps hands
control back to its parent. The host (terminal runner, HTTP server, MCP server)
only renders what is visible and relays input.

# Key Features

  - Append-only sequences: inserting never reorders what the user already saw.
  - Composable: sessions nest, and finishing a child advances its parent.
  - Observable: every transition is an event (logs, Prometheus, Redis).
  - Declarative: scripts come from YAML, JSON, a Loam repository or the Go DSL.

# Usage

	eng, err := clui.New("./onboarding.yaml")
	if err != nil {
		log.Fatal(err)
	}

	if err := eng.Run(context.Background()); err != nil {
		log.Fatal(err)
	}

	name, _ := eng.Memory().Get("name")
	fmt.Println("bye", name)
*/
package clui
