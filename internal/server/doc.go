// Package server exposes tool providers over the Model Context Protocol.
//
// Each tool of the provider's service definition becomes an MCP tool whose
// input schema is built from the parameter descriptors. Calls are decoded,
// traced, timed and handed to the provider; its result becomes text content.
//
// Failures never surface as protocol errors. They come back as results with
// IsError set, text "<Kind>: <message>" and structured content
// {"kind", "message"}, and the session keeps serving.
//
// Example Usage:
//
//	srv := server.New(server.Config{Name: "devtools-mcp", Version: "0.1.0"},
//	    provider, tracer, metrics, logger)
//	err := srv.Run(ctx, &mcp.StdioTransport{})
package server
