// Package backend is the REST data-access client for the clinic service.
// The service exposes one collection per resource (patients, appointments,
// treatments) with the usual GET/POST/PUT/PATCH/DELETE verbs.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/apperr"
)

// TransportError reports a network failure or a non-2xx response.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int // 0 when no response was received
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes a 404 response match apperr.ErrNotFound and every other failure
// match apperr.ErrUpstream.
func (e *TransportError) Is(target error) bool {
	if e.StatusCode == http.StatusNotFound {
		return target == apperr.ErrNotFound
	}
	return target == apperr.ErrUpstream
}

// Client talks to the clinic REST service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client rooted at baseURL (e.g. http://localhost:3000).
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "backend").Logger(),
	}
}

// List fetches a whole collection, optionally narrowed by query (e.g.
// patientId=42), into out.
func (c *Client) List(ctx context.Context, resource string, query url.Values, out interface{}) error {
	target := c.baseURL + "/" + resource
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, target, nil, out)
}

// Get fetches one record.
func (c *Client) Get(ctx context.Context, resource, id string, out interface{}) error {
	return c.do(ctx, http.MethodGet, c.itemURL(resource, id), nil, out)
}

// Create posts a new record; the stored record is decoded into out.
func (c *Client) Create(ctx context.Context, resource string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, c.baseURL+"/"+resource, in, out)
}

// Replace overwrites a record with PUT.
func (c *Client) Replace(ctx context.Context, resource, id string, in, out interface{}) error {
	return c.do(ctx, http.MethodPut, c.itemURL(resource, id), in, out)
}

// Patch updates selected fields of a record.
func (c *Client) Patch(ctx context.Context, resource, id string, in, out interface{}) error {
	return c.do(ctx, http.MethodPatch, c.itemURL(resource, id), in, out)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(resource, id), nil, nil)
}

func (c *Client) itemURL(resource, id string) string {
	return c.baseURL + "/" + resource + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, target string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", method, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("url", target).Msg("backend request failed")
		return &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &TransportError{Method: method, URL: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// ErrNotFound matches (via errors.Is) a 404 from the backend.
var ErrNotFound = apperr.ErrNotFound
