package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/clui"
	"github.com/aretw0/clui/internal/logging"
	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/ports"
	"github.com/aretw0/clui/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ScriptURI is the resource exposing the loaded script.
const ScriptURI = "clui://script"

// Server exposes a guarded session as an MCP Server.
type Server struct {
	guard     *session.Guard
	script    domain.Script
	build     ports.StepBuilder
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithStepBuilder enables the session_insert tool.
func WithStepBuilder(b ports.StepBuilder) Option {
	return func(s *Server) {
		s.build = b
	}
}

// WithScript publishes the script as the clui://script resource.
func WithScript(script domain.Script) Option {
	return func(s *Server) {
		s.script = script
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(g *session.Guard, opts ...Option) *Server {
	s := &Server{
		guard:     g,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("clui-mcp", strings.TrimSpace(clui.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("session_state",
		mcp.WithDescription("Describe the session: cursor position, length and visible steps."),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleState))

	s.mcpServer.AddTool(mcp.NewTool("session_next",
		mcp.WithDescription("Reveal the next step. Inside a nested sub-flow the sub-flow advances first. On a finished session this completes the flow."),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleNext))

	s.mcpServer.AddTool(mcp.NewTool("session_reset",
		mcp.WithDescription("Rewind the session to its first step. Inserted steps are kept."),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleReset))

	if s.build != nil {
		s.mcpServer.AddTool(mcp.NewTool("session_insert",
			mcp.WithDescription("Append steps to the end of the session without moving the cursor."),
			mcp.WithString("steps", mcp.Required(), mcp.Description(`JSON array of steps, e.g. ["Hello", {"prompt": "Name?", "key": "name"}]`)),
			mcp.WithOutputSchema[domain.Snapshot](),
		), mcp.NewStructuredToolHandler(s.handleInsert))
	}
}

// Handler methods for structured tools

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Snapshot, error) {
	return s.guard.Snapshot(), nil
}

func (s *Server) handleNext(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Snapshot, error) {
	s.guard.Do(func(sess *session.Session) {
		sess.Advance()
	})
	return s.guard.Snapshot(), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Snapshot, error) {
	s.guard.Do(func(sess *session.Session) {
		sess.Rewind()
	})
	return s.guard.Snapshot(), nil
}

func (s *Server) handleInsert(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Snapshot, error) {
	if s.build == nil {
		return domain.Snapshot{}, fmt.Errorf("insert is not enabled")
	}

	var raw []any
	switch v := args["steps"].(type) {
	case string:
		if err := json.Unmarshal([]byte(v), &raw); err != nil {
			return domain.Snapshot{}, fmt.Errorf("steps must be a JSON array: %w", err)
		}
	case []any:
		raw = v
	default:
		return domain.Snapshot{}, fmt.Errorf("steps is required")
	}

	units, err := s.build(raw)
	if err != nil {
		s.logger.Warn("MCP insert: invalid steps", "err", err)
		return domain.Snapshot{}, fmt.Errorf("invalid steps: %w", err)
	}

	s.guard.Do(func(sess *session.Session) {
		sess.Handle().Insert(units...)
	})
	return s.guard.Snapshot(), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ScriptURI, "Loaded Script",
		mcp.WithMIMEType("application/json"),
	), s.readScript)
}

func (s *Server) readScript(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.script)
	if err != nil {
		return nil, fmt.Errorf("failed to encode script: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ScriptURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
