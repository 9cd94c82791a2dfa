package devtools

import (
	"context"
	"encoding/json"
	"net"
	"strconv"

	"github.com/mafredri/cdp"
	"github.com/mafredri/cdp/devtool"
	"github.com/mafredri/cdp/protocol/runtime"
	"github.com/mafredri/cdp/rpcc"
	"go.uber.org/zap"
)

// Config locates the browser's remote-debugging endpoint.
type Config struct {
	Host string
	Port int
}

// Address returns host:port.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// URL returns the HTTP base URL of the endpoint.
func (c Config) URL() string {
	return "http://" + c.Address()
}

// PageTarget is an inspectable page.
type PageTarget struct {
	ID           string
	Title        string
	URL          string
	Type         string
	WebSocketURL string
}

// TargetLister lists debugging targets. *devtool.DevTools implements it.
type TargetLister interface {
	List(ctx context.Context) ([]*devtool.Target, error)
}

// Session is a live connection to one target.
type Session interface {
	Evaluate(ctx context.Context, args *runtime.EvaluateArgs) (*runtime.EvaluateReply, error)
	Close() error
}

// Dialer opens a Session on a target's websocket debugger URL.
type Dialer func(ctx context.Context, url string) (Session, error)

// Client talks to the browser over the DevTools protocol. It keeps no
// connection between calls.
type Client struct {
	cfg    Config
	lister TargetLister
	dial   Dialer
	logger *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLister replaces the HTTP target listing.
func WithLister(l TargetLister) Option {
	return func(c *Client) { c.lister = l }
}

// WithDialer replaces the websocket session dialer.
func WithDialer(d Dialer) Option {
	return func(c *Client) { c.dial = d }
}

// New creates a client for the endpoint in cfg.
func New(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		cfg:    cfg,
		lister: devtool.New(cfg.URL()),
		dial:   DialSession,
		logger: logger.Named("devtools"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the endpoint configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// ListTargets returns the page targets in the order the endpoint reports
// them. Other target types are skipped.
func (c *Client) ListTargets(ctx context.Context) ([]PageTarget, error) {
	targets, err := c.lister.List(ctx)
	if err != nil {
		return nil, c.connectionError(err)
	}

	pages := make([]PageTarget, 0, len(targets))
	for _, t := range targets {
		if t == nil || t.Type != devtool.Page {
			continue
		}
		pages = append(pages, PageTarget{
			ID:           t.ID,
			Title:        t.Title,
			URL:          t.URL,
			Type:         string(t.Type),
			WebSocketURL: t.WebSocketDebuggerURL,
		})
	}

	c.logger.Debug("listed targets",
		zap.Int("targets", len(targets)),
		zap.Int("pages", len(pages)),
	)
	return pages, nil
}

// Evaluate opens a session on target, evaluates expression with the result
// returned by value and closes the session before returning.
func (c *Client) Evaluate(ctx context.Context, target PageTarget, expression string) (json.RawMessage, error) {
	session, err := c.dial(ctx, target.WebSocketURL)
	if err != nil {
		return nil, c.connectionError(err)
	}
	c.logger.Debug("session opened", zap.String("target", target.ID))

	defer func() {
		if cerr := session.Close(); cerr != nil {
			c.logger.Warn("failed to close session", zap.String("target", target.ID), zap.Error(cerr))
			return
		}
		c.logger.Debug("session closed", zap.String("target", target.ID))
	}()

	args := runtime.NewEvaluateArgs(expression).SetReturnByValue(true)
	reply, err := session.Evaluate(ctx, args)
	if err != nil {
		return nil, Wrap(KindEvaluation, err, "evaluation request failed on page %s", target.ID)
	}
	if reply.ExceptionDetails != nil {
		return nil, NewError(KindEvaluation, "page script raised: %s", exceptionText(reply.ExceptionDetails))
	}

	return reply.Result.Value, nil
}

func (c *Client) connectionError(err error) *Error {
	return Wrap(KindConnection, err,
		"cannot connect to browser at %s, make sure it is running with --remote-debugging-port=%d",
		c.cfg.Address(), c.cfg.Port)
}

func exceptionText(d *runtime.ExceptionDetails) string {
	if d.Exception != nil && d.Exception.Description != nil {
		return *d.Exception.Description
	}
	return d.Text
}

// DialSession connects to a target's websocket debugger URL.
func DialSession(ctx context.Context, url string) (Session, error) {
	conn, err := rpcc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &rpccSession{conn: conn, client: cdp.NewClient(conn)}, nil
}

type rpccSession struct {
	conn   *rpcc.Conn
	client *cdp.Client
}

func (s *rpccSession) Evaluate(ctx context.Context, args *runtime.EvaluateArgs) (*runtime.EvaluateReply, error) {
	return s.client.Runtime.Evaluate(ctx, args)
}

func (s *rpccSession) Close() error {
	return s.conn.Close()
}
