// Package slicebox is a thin client for the Slicebox REST API endpoints the
// transaction monitor reads and acts on.
//
// The client does no retrying and no error hiding: every transport failure
// or non-2xx status comes back to the caller.
package slicebox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request id so client logs can be matched
// with server logs.
const RequestIDHeader = "X-Request-Id"

const maxErrorBody = 4096

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Ref        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Ref, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client talks to one Slicebox server.
type Client struct {
	baseURL  string
	http     *http.Client
	username string
	password string
	timeout  time.Duration
	tracer   oteltrace.Tracer
	logger   *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sends requests through hc. The client is copied, never
// modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero keeps the default of 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBasicAuth sends credentials on every request. Empty username disables it.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTracerProvider records a client span per request.
func WithTracerProvider(tp oteltrace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer("sbmonitor/slicebox")
		}
	}
}

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the server at baseURL (scheme and host, optional path prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("slicebox: empty base URL")
	}
	c := &Client{
		baseURL: base,
		http:    http.DefaultClient,
		timeout: 30 * time.Second,
		tracer:  noop.NewTracerProvider().Tracer(""),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.http
	hc.Timeout = c.timeout
	c.http = &hc
	c.logger = c.logger.With(zap.String("server", c.baseURL))
	return c, nil
}

// BaseURL returns the normalised server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one request. ref is the path plus raw query, appended to the
// base URL verbatim. body, when non-nil, is sent as JSON; out, when non-nil,
// receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, ref string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, ref, err)
		}
		payload = bytes.NewReader(b)
	}

	ctx, span := c.tracer.Start(ctx, "slicebox."+method,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.target", ref),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+ref, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("build %s %s: %w", method, ref, err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	span.SetAttributes(attribute.String("sbmonitor.request_id", reqID))

	log := c.logger.With(
		zap.String("method", method),
		zap.String("ref", ref),
		zap.String("request_id", reqID),
	)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, ref, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serr := &StatusError{
			Method:     method,
			Ref:        ref,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
		span.RecordError(serr)
		span.SetStatus(codes.Error, serr.Error())
		log.Warn("unexpected status")
		return serr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Debug("request done")
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("decode failed", zap.Error(err))
		return fmt.Errorf("decode %s %s: %w", method, ref, err)
	}
	log.Debug("request done")
	return nil
}
