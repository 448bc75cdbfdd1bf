/*
Package steps provides the interactive step kinds used by conversational flows.

Every step implements session.Step (it remembers the handle it was bound to) and
runner.Activator (it does its work once revealed, then drives the session).

  - Message renders markdown and advances.
  - Prompt asks a question, stores the answer in Memory and advances. It can
    append follow-up steps to the session depending on the answer.
  - Confirm asks a yes/no question; "no" can rewind the session.

Texts may reference earlier answers with {{ .key }}.
*/
package steps
