// Package api is the HTTP client for the platform backend REST API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/os2iot/iotconsole/internal/logging"
	"github.com/os2iot/iotconsole/internal/pagedtable"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "iotconsole"
	maxErrorBody     = 4 << 10

	headerRequestID = "X-Request-ID"
)

// Client talks to the backend REST API.
type Client struct {
	baseURL   *url.URL
	token     string
	http      *http.Client
	logger    zerolog.Logger
	userAgent string
}

// Option customizes a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = logging.ComponentLogger(l, "api") }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}

	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: defaultTimeout},
		logger:    zerolog.Nop(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends the request and decodes a JSON body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := logging.TraceIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.NewTraceID()
	}
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    readErrorMessage(resp.Body),
		}
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("request_id", requestID).
			Msg("request rejected")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// readErrorMessage extracts "message" from a NestJS-style error body.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Message any `json:"message"`
	}
	if json.Unmarshal(data, &body) != nil {
		return strings.TrimSpace(string(data))
	}
	switch m := body.Message.(type) {
	case string:
		return m
	case []any:
		parts := make([]string, 0, len(m))
		for _, p := range m {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

// listEnvelope accepts both {data, count} and the ChirpStack {result, totalCount} shapes.
type listEnvelope[T any] struct {
	Data       []T         `json:"data"`
	Count      int         `json:"count"`
	Result     []T         `json:"result"`
	TotalCount json.Number `json:"totalCount"`
}

func (e listEnvelope[T]) page() (pagedtable.PageResult[T], error) {
	if e.Result != nil && e.Data == nil {
		total := 0
		if e.TotalCount != "" {
			n, err := strconv.Atoi(e.TotalCount.String())
			if err != nil {
				return pagedtable.PageResult[T]{}, fmt.Errorf("invalid totalCount %q: %w", e.TotalCount, err)
			}
			total = n
		}
		return pagedtable.PageResult[T]{Rows: e.Result, TotalCount: total}, nil
	}
	rows := e.Data
	if rows == nil {
		rows = []T{}
	}
	return pagedtable.PageResult[T]{Rows: rows, TotalCount: e.Count}, nil
}

// listQuery encodes pagination and sorting. The backend expects the column
// in "orderOn" and the direction in "sort".
func listQuery(req pagedtable.PageRequest, filterParam string) url.Values {
	q := url.Values{}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	q.Set("offset", strconv.Itoa(req.Offset))
	if req.SortColumn != "" {
		q.Set("orderOn", req.SortColumn)
		switch req.SortDirection {
		case pagedtable.SortDescending:
			q.Set("sort", "DESC")
		case pagedtable.SortAscending, pagedtable.SortNone:
			q.Set("sort", "ASC")
		}
	}
	if filterParam != "" && req.Filter != "" {
		q.Set(filterParam, req.Filter)
	}
	return q
}

func listPage[T any](
	ctx context.Context,
	c *Client,
	path string,
	req pagedtable.PageRequest,
	filterParam string,
) (pagedtable.PageResult[T], error) {
	var env listEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path, listQuery(req, filterParam), &env); err != nil {
		return pagedtable.PageResult[T]{}, err
	}
	return env.page()
}

// deleteResponse is returned by delete endpoints that report success explicitly.
type deleteResponse struct {
	Success *bool `json:"success"`
}

func (c *Client) deleteResource(ctx context.Context, path string) error {
	var body deleteResponse
	if err := c.do(ctx, http.MethodDelete, path, nil, &body); err != nil {
		return err
	}
	if body.Success != nil && !*body.Success {
		return fmt.Errorf("%w: %s", ErrDeleteRejected, path)
	}
	return nil
}
