// Package mcp implements a Model Context Protocol server exposing the
// syntax-layer classifier as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codelayers/strata/internal/observability"
	"github.com/codelayers/strata/pkg/classify"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "strata"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 2
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional instrument set. Nil disables per-tool metrics.
	Metrics *observability.Metrics
}

// Server wraps the MCP SDK server with classifier tool registrations.
type Server struct {
	inner   *mcpsdk.Server
	engine  *classify.Engine
	mu      sync.RWMutex
	tools   []string
	metrics *observability.Metrics
}

// NewServer creates a new MCP server with all classifier tools registered.
func NewServer(engine *classify.Engine, deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner:   inner,
		engine:  engine,
		tools:   make([]string, 0, toolCount),
		metrics: deps.Metrics,
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the
// context is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It
// blocks until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all classifier MCP tools to the server.
func (s *Server) registerTools() {
	s.registerClassifyTool()
	s.registerSummaryTool()
}

func (s *Server) registerClassifyTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameClassify,
		Description: classifyToolDescription,
	}, withMetrics(s.metrics, ToolNameClassify, s.handleClassify))

	s.trackTool(ToolNameClassify)
}

func (s *Server) registerSummaryTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameSummary,
		Description: summaryToolDescription,
	}, withMetrics(s.metrics, ToolNameSummary, s.handleSummary))

	s.trackTool(ToolNameSummary)
}

// withMetrics wraps an MCP tool handler to record request metrics per
// invocation.
func withMetrics[Input any](
	metrics *observability.Metrics,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		start := time.Now()

		result, output, err := handler(ctx, req, input)

		recorded := err
		if recorded == nil && result != nil && result.IsError {
			recorded = errToolFailed
		}

		metrics.RecordRequest("mcp."+toolName, recorded, time.Since(start))

		return result, output, err
	}
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}

// Tool description constants.
const (
	classifyToolDescription = "Classify every byte of a TSX source file into its " +
		"syntax-origin layer (base, type, markup, library). " +
		"Returns the ordered region partition as JSON."

	summaryToolDescription = "Summarize the syntax-layer composition of a TSX source " +
		"file: per-layer region counts, byte counts and shares."
)
