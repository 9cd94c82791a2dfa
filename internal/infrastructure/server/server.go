package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/devtools-mcp/internal/infrastructure/config"
	"github.com/GriffinCanCode/devtools-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/devtools-mcp/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/devtools-mcp/internal/logging"
	"github.com/GriffinCanCode/devtools-mcp/internal/providers/browser"
	"github.com/GriffinCanCode/devtools-mcp/internal/providers/browser/devtools"
	"github.com/GriffinCanCode/devtools-mcp/internal/providers/browser/sanitize"
	mcpserver "github.com/GriffinCanCode/devtools-mcp/internal/server"
	"github.com/GriffinCanCode/devtools-mcp/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server wires the browser provider to the MCP server
type Server struct {
	mcp     *mcpserver.Server
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing server",
		zap.String("name", cfg.Server.Name),
		zap.String("version", cfg.Server.Version),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New(cfg.Server.Name, logger.Logger)

	client := devtools.New(devtools.Config{
		Host: cfg.Browser.Host,
		Port: cfg.Browser.Port,
	}, logger.Logger)
	logger.Info("DevTools endpoint", zap.String("url", client.Config().URL()))

	registry := service.NewRegistry()
	if err := registry.Register(browser.New(client, sanitize.New(), metrics, logger.Logger)); err != nil {
		return nil, fmt.Errorf("failed to register browser service: %w", err)
	}
	logger.Info("Services registered", zap.Any("stats", registry.Stats()))

	srv := mcpserver.New(mcpserver.Config{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, registry, tracer, metrics, logger.Logger)

	return &Server{
		mcp:     srv,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Metrics returns the metrics collector
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run serves MCP on transport until the peer disconnects or ctx is
// cancelled. The metrics listener, when configured, runs alongside and stops
// with it. Cancellation and end of input are a clean shutdown.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	if addr := s.config.Metrics.Addr; addr != "" {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen for metrics on %s: %w", addr, err)
		}
		s.serveMetrics(ctx, g, ln)
	}

	g.Go(func() error {
		defer cancel()
		return s.mcp.Run(ctx, transport)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) serveMetrics(ctx context.Context, g *errgroup.Group, ln net.Listener) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}

	s.logger.Info("Starting metrics server", zap.String("addr", ln.Addr().String()))

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// Close flushes the logger
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	// Sync on stderr reports EINVAL on some platforms.
	_ = s.logger.Sync()
	return nil
}
