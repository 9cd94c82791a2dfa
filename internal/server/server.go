package server

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/devtools-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/devtools-mcp/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/devtools-mcp/internal/providers/browser/devtools"
	"github.com/GriffinCanCode/devtools-mcp/internal/service"
	"github.com/GriffinCanCode/devtools-mcp/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Config contains server identity
type Config struct {
	Name    string
	Version string
}

// Server exposes the tools of a registry over MCP
type Server struct {
	mcp      *mcp.Server
	registry *service.Registry
	tools    int
	tracer   *tracing.Tracer
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// New creates a server and registers every tool in registry. tracer and
// metrics may be nil.
func New(cfg Config, registry *service.Registry, tracer *tracing.Tracer, metrics *monitoring.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tracer == nil {
		tracer = tracing.New(cfg.Name, logger)
	}

	s := &Server{
		mcp:      mcp.NewServer(&mcp.Implementation{Name: cfg.Name, Version: cfg.Version}, nil),
		registry: registry,
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger.Named("server"),
	}

	for _, def := range registry.List() {
		for _, tool := range def.Tools {
			s.mcp.AddTool(mcpTool(tool), s.handler(tool.ID))
			s.tools++
			s.logger.Debug("registered tool", zap.String("service", def.ID), zap.String("tool", tool.ID))
		}
	}
	return s
}

// MCP returns the underlying MCP server
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves on transport until the peer disconnects or ctx is done.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("serving", zap.Int("tools", s.tools))
	if err := s.mcp.Run(ctx, transport); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func (s *Server) handler(toolID string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args []byte
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		return s.Call(ctx, toolID, args), nil
	}
}

// Call runs one tool call. Every failure, including a panic in a
// provider, comes back as an error result.
func (s *Server) Call(ctx context.Context, toolID string, args []byte) (result *mcp.CallToolResult) {
	span, ctx := s.tracer.StartSpan(ctx, "tools/call")
	span.SetTag("tool", toolID)
	timer := monitoring.NewTimer(s.metrics, toolID)

	status := monitoring.StatusOK
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool panicked",
				zap.String("tool", toolID),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			status = string(devtools.KindInternal)
			span.SetError(fmt.Errorf("panic: %v", r))
			result = errorResult(status, fmt.Sprintf("tool %s failed unexpectedly", toolID))
		}

		duration := timer.Stop(status)
		s.tracer.End(span)
		s.logger.Info("tool call",
			zap.String("request_id", string(span.TraceID)),
			zap.String("tool", toolID),
			zap.String("status", status),
			zap.Duration("duration", duration),
		)
	}()

	params, err := decodeArguments(args)
	if err != nil {
		status = string(devtools.KindInvalidArgument)
		span.SetError(err)
		return errorResult(status, err.Error())
	}

	span.Log("arguments", params)

	res, err := s.registry.Execute(ctx, toolID, params)
	if err != nil {
		res, _ = types.Failure(string(devtools.KindOf(err)), err.Error())
	}
	if res == nil {
		res, _ = types.Failure(string(devtools.KindInternal), "tool "+toolID+" returned no result")
	}
	if !res.Success {
		status = res.Kind
		span.SetError(fmt.Errorf("%s: %s", res.Kind, res.Message()))
	}
	return toolResult(res)
}

// decodeArguments reads the call arguments. Missing or null arguments are
// an empty object.
func decodeArguments(args []byte) (map[string]interface{}, error) {
	params := map[string]interface{}{}
	if len(args) == 0 || string(args) == "null" {
		return params, nil
	}
	if err := sonic.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	return params, nil
}

func toolResult(res *types.Result) *mcp.CallToolResult {
	if !res.Success {
		return errorResult(res.Kind, res.Message())
	}

	out := &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: res.Text}},
	}
	if res.Data != nil {
		out.StructuredContent = res.Data
	}
	return out
}

// errorResult reports a failure inside a successful response, so the
// caller sees the kind and the session stays up.
func errorResult(kind, message string) *mcp.CallToolResult {
	if kind == "" {
		kind = string(devtools.KindInternal)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: kind + ": " + message}},
		StructuredContent: map[string]interface{}{
			"kind":    kind,
			"message": message,
		},
	}
}
