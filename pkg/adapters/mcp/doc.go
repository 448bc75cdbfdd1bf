// Package mcp exposes a running session to MCP clients: tools to read and drive
// the cursor (session_state, session_next, session_reset, session_insert) and
// the loaded script as the clui://script resource.
package mcp
