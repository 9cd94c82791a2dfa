// Package main is the entry point for the devtools MCP server.
//
// The server speaks the Model Context Protocol on stdin/stdout and reads
// pages from a Chromium-family browser through its remote-debugging port:
//
//	Agent ⇄ (MCP over stdio) ⇄ devtools-mcp ⇄ (CDP) ⇄ Browser
//
// Tools:
//   - list_pages: open pages as {index, title, url}
//   - get_page_html: sanitized HTML of a page or of one element
//
// Configuration:
//   - Environment variables: CDP_HOST, CDP_PORT, LOG_LEVEL, LOG_DEV,
//     METRICS_ADDR, SERVER_NAME, SERVER_VERSION
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Start the browser with remote debugging enabled
//	chromium --remote-debugging-port=9222
//
//	# Run the server (normally launched by the MCP client)
//	./server -host localhost -port 9222
//
//	# Development logging and a metrics endpoint
//	./server -dev -metrics 127.0.0.1:9464
//
// Logs go to stderr. SIGINT and SIGTERM stop the server.
package main
