package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GriffinCanCode/devtools-mcp/internal/infrastructure/config"
	"github.com/GriffinCanCode/devtools-mcp/internal/infrastructure/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "devtools-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags override environment values
	flag.StringVar(&cfg.Browser.Host, "host", cfg.Browser.Host, "Browser remote-debugging host (CDP_HOST)")
	flag.IntVar(&cfg.Browser.Port, "port", cfg.Browser.Port, "Browser remote-debugging port (CDP_PORT)")
	flag.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level: debug, info, warn, error (LOG_LEVEL)")
	flag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "Console log encoding (LOG_DEV)")
	flag.StringVar(&cfg.Metrics.Addr, "metrics", cfg.Metrics.Addr, "Prometheus listen address, empty to disable (METRICS_ADDR)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, &mcp.StdioTransport{})
}
