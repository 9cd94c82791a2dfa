package tracing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStartSpanNewTrace(t *testing.T) {
	tracer := New("test", zap.NewNop())

	span, ctx := tracer.StartSpan(context.Background(), "op")

	assert.True(t, strings.HasPrefix(string(span.TraceID), "req_"))
	assert.True(t, strings.HasPrefix(string(span.SpanID), "span_"))
	assert.Empty(t, span.ParentID)
	assert.Equal(t, span.TraceID, GetTraceID(ctx))
	assert.Equal(t, span.SpanID, GetSpanID(ctx))
}

func TestNestedSpans(t *testing.T) {
	tracer := New("test", zap.NewNop())

	parent, ctx := tracer.StartSpan(context.Background(), "outer")
	child, _ := tracer.StartSpan(ctx, "inner")

	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.NotEqual(t, parent.SpanID, child.SpanID)
}

func TestStartSpanReplacesMalformedTraceID(t *testing.T) {
	tracer := New("test", zap.NewNop())
	ctx := context.WithValue(context.Background(), traceIDKey, TraceID("req_fixed"))

	span, spanCtx := tracer.StartSpan(ctx, "op")

	assert.NotEqual(t, TraceID("req_fixed"), span.TraceID)
	assert.True(t, strings.HasPrefix(string(span.TraceID), "req_"))
	assert.Equal(t, span.TraceID, GetTraceID(spanCtx))
}

func TestEndLogsTraceAgeForChildSpans(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	tracer := New("test", zap.New(core))

	parent, ctx := tracer.StartSpan(context.Background(), "outer")
	child, _ := tracer.StartSpan(ctx, "inner")
	tracer.End(child)
	tracer.End(parent)

	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].ContextMap(), "trace_age")
	assert.NotContains(t, entries[1].ContextMap(), "trace_age")
}

func TestEndLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	tracer := New("test", zap.New(core))

	span, _ := tracer.StartSpan(context.Background(), "list_pages")
	span.SetTag("tool", "list_pages")
	tracer.End(span)

	failed, _ := tracer.StartSpan(context.Background(), "get_page_html")
	failed.SetError(errors.New("no pages"))
	tracer.End(failed)

	ok := logs.FilterMessage("span completed").All()
	require.Len(t, ok, 1)
	assert.Equal(t, "list_pages", ok[0].ContextMap()["operation"])
	assert.Equal(t, "list_pages", ok[0].ContextMap()["tool"])
	assert.Equal(t, "trace", ok[0].LoggerName)

	bad := logs.FilterMessage("span completed with error").All()
	require.Len(t, bad, 1)
	assert.Equal(t, "no pages", bad[0].ContextMap()["error"])
}

func TestFinishIsStable(t *testing.T) {
	span, _ := New("test", nil).StartSpan(context.Background(), "op")
	span.Finish()
	end := span.EndTime
	span.Finish()

	assert.Equal(t, end, span.EndTime)
	assert.GreaterOrEqual(t, span.Duration.Nanoseconds(), int64(0))
}

func TestSpanLog(t *testing.T) {
	span, _ := New("test", nil).StartSpan(context.Background(), "op")
	span.Log("sanitized", map[string]interface{}{"passes": 2})

	require.Len(t, span.Logs, 1)
	assert.Equal(t, "sanitized", span.Logs[0].Message)
}

func TestGetIDsEmptyContext(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))
}
