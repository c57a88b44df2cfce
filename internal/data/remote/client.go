// Package remote fetches record pages from an HTTP endpoint.
//
// The endpoint is called as GET <url>?page=N&page_size=M and must answer with
// a JSON body of the form {"items": [...], "total": N}. A missing total is
// treated as unknown.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hay-kot/pagepick/internal/core/logging"
	"github.com/hay-kot/pagepick/internal/core/page"
)

// DefaultTimeout applies when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// ErrMalformedResponse is returned when the body cannot be decoded.
var ErrMalformedResponse = errors.New("malformed page response")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("remote returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Client is a page.Fetcher over HTTP.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ page.Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for rawURL. A zero timeout uses DefaultTimeout.
func New(rawURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("source url must be http or https, got %q", rawURL)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type pageBody struct {
	Items []page.Record `json:"items"`
	Total *int          `json:"total"`
}

// Fetch requests one page. Non-2xx responses are returned as *StatusError.
func (c *Client) Fetch(ctx context.Context, req page.Request) (page.Result, error) {
	if err := req.Validate(); err != nil {
		return page.Result{}, err
	}

	u := *c.base
	q := u.Query()
	q.Set("page", strconv.Itoa(req.Number))
	q.Set("page_size", strconv.Itoa(req.Size))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return page.Result{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return page.Result{}, fmt.Errorf("fetch page %d: %w", req.Number, err)
	}
	defer func() { _ = resp.Body.Close() }()

	l := logging.Component("remote")
	l.Debug().
		Ctx(ctx).
		Int("page", req.Number).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("page fetched")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return page.Result{}, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var body pageBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return page.Result{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	total := page.TotalUnknown
	if body.Total != nil {
		total = *body.Total
	}

	return page.Result{Records: body.Items, Total: total}, nil
}
