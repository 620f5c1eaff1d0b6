package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"devhub/internal/session"

	"github.com/rs/zerolog"
)

type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
}

// Client sends requests to the DevHub backend on behalf of one session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	logger     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, sess *session.Session, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    sess,
		logger:     logger,
	}
}

// WithSession returns a client sharing this one's transport but reading its
// token from sess.
func (c *Client) WithSession(sess *session.Session) *Client {
	clone := *c
	clone.session = sess
	return &clone
}

func (c *Client) Session() *session.Session {
	return c.session
}

// Do performs one request. A non-nil out receives the decoded 2xx payload.
func (c *Client) Do(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return &Error{Message: DefaultErrorMessage, Err: err}
	}

	token, err := c.session.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", endpoint).Msg("API request failed")
		return &Error{Message: DefaultErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: DefaultErrorMessage, Err: err}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{
			Status:  resp.StatusCode,
			Message: errorMessage(data),
			Err:     fmt.Errorf("%s %s: status %d", method, endpoint, resp.StatusCode),
		}
		c.logger.Warn().Str("path", endpoint).Int("status", resp.StatusCode).Str("error", apiErr.Message).Msg("API error")
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: DefaultErrorMessage, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// Filters become query parameters. Empty values are dropped.
type Filters map[string]string

func (f Filters) Encode() string {
	values := url.Values{}
	for k, v := range f {
		if v != "" {
			values.Set(k, v)
		}
	}
	return values.Encode()
}

func withQuery(path string, f Filters) string {
	if q := f.Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

// decodeList accepts both a bare array and an object wrapping it under key.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var out []T
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode %s list: %w", key, err)
		}
		return out, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", key, err)
	}
	inner, ok := wrapped[key]
	if !ok {
		return nil, nil
	}
	return decodeList[T](inner, key)
}

// decodeOne accepts both a bare object and one wrapped under key.
func decodeOne[T any](raw json.RawMessage, key string) (*T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if inner, ok := wrapped[key]; ok && len(bytes.TrimSpace(inner)) > 0 && inner[0] == '{' {
		raw = inner
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &out, nil
}

func list[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, path, RequestOptions{}, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw, key)
}

func one[T any](ctx context.Context, c *Client, path string, opts RequestOptions, key string) (*T, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, path, opts, &raw); err != nil {
		return nil, err
	}
	return decodeOne[T](raw, key)
}
