// Package server assembles the process: logger, metrics, tracer, DevTools
// client, browser provider and MCP server, all built from config.Config.
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger (stderr, production or development encoding)
//  3. Create metrics, tracer and the DevTools client
//  4. Register the browser provider's tools on the MCP server
//  5. Serve MCP on the transport, plus /metrics when METRICS_ADDR is set
//  6. Stop on peer disconnect or context cancellation
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//	err = srv.Run(ctx, &mcp.StdioTransport{})
package server
