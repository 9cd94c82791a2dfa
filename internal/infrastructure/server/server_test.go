package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/devtools-mcp/internal/infrastructure/config"
)

// closedPort returns a local port nothing listens on.
func closedPort(t *testing.T) int {
	srv := httptest.NewServer(http.NotFoundHandler())
	_, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	srv.Close()

	n, err := strconv.Atoi(port)
	require.NoError(t, err)
	return n
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Browser.Host = "127.0.0.1"
	cfg.Browser.Port = closedPort(t)
	cfg.Logging.Level = "error"
	return cfg
}

func TestNewServerRejectsBadLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.Level = "chatty"

	_, err := NewServer(cfg)
	assert.Error(t, err)
}

func TestRunServesUntilDisconnect(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Addr = "127.0.0.1:0"

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	defer srv.Close()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(context.Background(), clientTransport, nil)
	require.NoError(t, err)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: "list_pages"})
	require.NoError(t, err)
	require.True(t, res.IsError)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(tc.Text, "ConnectionError: "))
	assert.Contains(t, tc.Text, "--remote-debugging-port="+strconv.Itoa(cfg.Browser.Port))

	assert.Equal(t, 1.0, testutil.ToFloat64(srv.Metrics().ToolCalls.WithLabelValues("list_pages", "ConnectionError")))

	require.NoError(t, cs.Close())
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the client disconnected")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	srv, err := NewServer(testConfig(t))
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(context.Background(), clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunMetricsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testConfig(t)
	cfg.Metrics.Addr = ln.Addr().String()

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	defer srv.Close()

	serverTransport, _ := mcp.NewInMemoryTransports()
	err = srv.Run(context.Background(), serverTransport)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "metrics")
}
