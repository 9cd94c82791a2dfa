/*
Package tracing provides lightweight per-call tracing.

# Overview

Each tool call runs inside a span. A span carries a trace id (a request id
when the call starts a trace), its own span id, tags and log entries, and is
written to the zap logger when it ends. Spans are logged synchronously.

# Usage

	tracer := tracing.New("devtools-mcp", logger)

	span, ctx := tracer.StartSpan(ctx, "tools/call get_page_html")
	defer tracer.End(span)

	span.SetTag("tool", "get_page_html")
	if err != nil {
		span.SetError(err)
	}

Nested StartSpan calls on the returned context share the trace id and
record the enclosing span as parent.
*/
package tracing
