/*
Package http exposes a running session over HTTP with chi.

# Routes

  - GET  /session  current snapshot
  - POST /next     advance through the control handle
  - POST /reset    rewind to the first step
  - POST /insert   append steps ({"steps": [...]}, needs WithStepBuilder)
  - GET  /events   server-sent stream of transitions (?type=advance,reset)
  - GET  /health, GET /info
*/
package http
