// Package cli holds the command implementations behind cmd/clui: the terminal
// conversation (RunSession), the HTTP control surface (Serve), the MCP server
// (ServeMCP) and the script inspection commands (Validate, Graph).
package cli
