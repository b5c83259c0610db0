// Package apiclient is the HTTP client for the analytics REST backend.
//
// Every request carries JSON Content-Type and Accept headers plus an
// X-Request-ID for correlation with backend logs. Dashboard endpoints wrap
// their payload in a {"data": ...} envelope which the client removes;
// CRUD endpoints are decoded as-is.
//
// Failures are returned as *TransportError, *StatusError, or *PayloadError
// so callers can tell an unreachable backend from a malformed response.
package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/stratametrics/internal/app/system/metrics"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DefaultBaseURL is used when Config.BaseURL is empty.
const DefaultBaseURL = "http://localhost:5000/api"

// Config configures a Client.
type Config struct {
	BaseURL      string        // e.g. http://localhost:5000/api
	Timeout      time.Duration // whole-request timeout; 0 means none
	MaxIdleConns int           // per-host idle connections; 0 keeps the transport default

	// HTTPClient overrides the client built from Timeout and MaxIdleConns.
	HTTPClient *http.Client
}

// Client talks to the analytics backend. It is safe for concurrent use.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *zap.Logger
}

// New builds a Client. The base URL must be absolute http(s).
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := ParseBaseURL(raw)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	hc := cfg.HTTPClient
	if hc == nil {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.MaxIdleConns > 0 {
			tr.MaxIdleConnsPerHost = cfg.MaxIdleConns
		}
		hc = &http.Client{Timeout: cfg.Timeout, Transport: tr}
	}

	return &Client{base: base, http: hc, logger: logger}, nil
}

// ParseBaseURL validates a backend base URL. The trailing slash is removed.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base url %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q has no host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Ping checks that the backend answers the summary endpoint with a valid
// envelope. Used by health checks and the backend probe job.
func (c *Client) Ping(ctx context.Context) error {
	body, err := c.do(ctx, http.MethodGet, "/dashboard/summary", "/dashboard/summary", nil, nil)
	if err != nil {
		return err
	}
	if !gjson.GetBytes(body, "data").Exists() {
		return &PayloadError{Endpoint: "/dashboard/summary", Err: errMissingEnvelope}
	}
	return nil
}

// CloseIdleConnections releases pooled connections. Call on shutdown.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// Dashboard returns the dashboard endpoint group.
func (c *Client) Dashboard() *DashboardAPI { return &DashboardAPI{c: c} }

// Protocols returns the protocol CRUD group.
func (c *Client) Protocols() *ProtocolsAPI { return &ProtocolsAPI{c: c} }

// Contracts returns the contract CRUD group.
func (c *Client) Contracts() *ContractsAPI { return &ContractsAPI{c: c} }

// Users returns the user read group.
func (c *Client) Users() *UsersAPI { return &UsersAPI{c: c} }

// Transactions returns the transaction read group.
func (c *Client) Transactions() *TransactionsAPI { return &TransactionsAPI{c: c} }

// do performs one request and returns the response body of a 2xx answer.
// route is the templated path used as the metrics label.
func (c *Client) do(ctx context.Context, method, path, route string, query url.Values, in any) ([]byte, error) {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode %s body: %w", route, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &TransportError{Endpoint: route, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveBackend(route, KindTransport, time.Since(start))
		return nil, &TransportError{Endpoint: route, Err: err}
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.ObserveBackend(route, KindTransport, time.Since(start))
		return nil, &TransportError{Endpoint: route, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		metrics.ObserveBackend(route, KindStatus, time.Since(start))
		return nil, &StatusError{Endpoint: route, StatusCode: res.StatusCode, Body: preview(b)}
	}

	metrics.ObserveBackend(route, "ok", time.Since(start))
	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("endpoint", route),
		zap.String("request_id", reqID),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)))
	return b, nil
}

// getData GETs a dashboard endpoint and decodes its "data" member into out.
func (c *Client) getData(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, path, query, nil)
	if err != nil {
		return err
	}
	return decodeMember(path, body, "data", out)
}

// send performs a CRUD request and decodes the un-enveloped body into out.
func (c *Client) send(ctx context.Context, method, path, route string, query url.Values, in, out any) error {
	body, err := c.do(ctx, method, path, route, query, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &PayloadError{Endpoint: route, Err: err}
	}
	return nil
}

// decodeMember decodes one top-level member of body into out. A body that
// is not JSON or lacks the member is a PayloadError.
func decodeMember(endpoint string, body []byte, member string, out any) error {
	if !gjson.ValidBytes(body) {
		return &PayloadError{Endpoint: endpoint, Err: errors.New("response is not valid JSON")}
	}
	res := gjson.GetBytes(body, member)
	if !res.Exists() {
		if member == "data" {
			return &PayloadError{Endpoint: endpoint, Err: errMissingEnvelope}
		}
		return &PayloadError{Endpoint: endpoint, Err: fmt.Errorf("response has no %q member", member)}
	}
	if err := json.Unmarshal([]byte(res.Raw), out); err != nil {
		return &PayloadError{Endpoint: endpoint, Err: err}
	}
	return nil
}
