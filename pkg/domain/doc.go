/*
Package domain contains the core domain models shared by the clui packages.

It defines how a conversational flow is authored (Script and StepSpec), what the
reveal session announces to its observers (Event) and how a live session is
described to remote hosts (Snapshot). This package is kept pure and free of
external dependencies like I/O or persistence.

# Key Entities

  - Script: An authored, linear list of steps plus the initial cursor position.
  - StepSpec: The declarative form of one step (message, prompt, confirm or a nested session).
  - Event: A transition notification emitted by a session (advance, done, forward, reset, insert).
  - Snapshot: A read-only view of a session (cursor, length, visible steps).
*/
package domain
