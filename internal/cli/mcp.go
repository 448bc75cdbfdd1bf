package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/clui"
	"github.com/aretw0/clui/internal/logging"
	"github.com/aretw0/clui/pkg/adapters/mcp"
	"github.com/aretw0/clui/pkg/session"
)

// MCPOptions contains the configuration for the mcp command.
type MCPOptions struct {
	Path      string
	Transport string
	Port      int
	Debug     bool
}

func newMCPServer(opts MCPOptions, logger *slog.Logger) (*mcp.Server, error) {
	eng, err := clui.New(opts.Path, clui.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return mcp.NewServer(session.NewGuard(eng.Session()),
		mcp.WithStepBuilder(eng.BuildSteps),
		mcp.WithScript(eng.Script()),
		mcp.WithLogger(logger),
	), nil
}

// ServeMCP runs the MCP server over stdio or SSE.
// Logs go to stderr in both cases so they never corrupt the JSON-RPC stream.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	srv, err := newMCPServer(opts, logger)
	if err != nil {
		return err
	}

	switch opts.Transport {
	case "", "stdio":
		logger.Info("Starting clui MCP Server (Stdio)...")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting clui MCP Server (SSE)", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}
