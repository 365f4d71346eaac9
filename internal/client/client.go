// Package client provides HTTP/JSON implementations of the backend
// collaborator interfaces (cart, order, inventory). Each client speaks
// REST against a configured base URL and maps transport failures onto
// domain error codes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/njord/internal/domain"
	"github.com/rs/zerolog"
)

const defaultTimeout = 10 * time.Second

// Client is the shared HTTP plumbing behind the collaborator clients.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates the shared backend client for the given base URL.
func New(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, domain.Invalid("client.new", "backend base URL is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// errorBody is the backend's JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do issues a JSON request and decodes a JSON response into out (when out
// is non-nil). Network faults and 5xx responses map to EUNAVAILABLE, 404
// to ENOTFOUND, other 4xx to the backend-reported code.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := fmt.Sprintf("client.%s %s", strings.ToLower(method), path)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return domain.Internal(err, op, "failed to encode request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return domain.Internal(err, op, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return domain.Unavailable(err, op, "backend service unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return domain.Internal(err, op, "failed to decode response body")
		}
		return nil
	}

	return c.responseError(op, resp)
}

// responseError maps a non-2xx response to a domain error.
func (c *Client) responseError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body errorBody
	message := ""
	if err := json.Unmarshal(data, &body); err == nil {
		message = body.Error.Message
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		return domain.Errorf(domain.ENOTFOUND, op, "%s", message)
	case resp.StatusCode >= 500:
		c.logger.Warn().Int("status", resp.StatusCode).Str("op", op).Msg("backend returned server error")
		return domain.Errorf(domain.EUNAVAILABLE, op, "backend service unavailable (status %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusConflict:
		if message == "" {
			message = "conflict"
		}
		return domain.Errorf(domain.ECONFLICT, op, "%s", message)
	default:
		if message == "" {
			message = fmt.Sprintf("backend rejected request (status %d)", resp.StatusCode)
		}
		return domain.Errorf(domain.EINVALID, op, "%s", message)
	}
}
