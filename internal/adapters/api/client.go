// Package api is the thin HTTP client for the content API. It owns the one
// configured base URL, injects the session's bearer token, and decodes the
// API's JSON envelope. Failures are never retried and never cached.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/http/perf"
)

// TokenFunc supplies the bearer token for a request, usually from the session
// resolved into the request context. An empty return means unauthenticated.
type TokenFunc func(ctx context.Context) string

// Envelope is the API's uniform response shape. A false Status ranks as a
// failure regardless of the HTTP status code.
type Envelope struct {
	Status  bool            `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Error is a failed API call: either transport-level or reported by the
// server through the envelope. Both are surfaced identically to the user.
type Error struct {
	Op         string // "GET services", "POST banners/update/3"
	HTTPStatus int    // 0 for transport failures
	Message    string // server-provided message, if any
	Err        error  // underlying transport error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Op, e.HTTPStatus)
}

// Unwrap returns the underlying transport error.
func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the text to surface in the UI for a failed call.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong. Please try again."
}

// File is one binary part of a multipart submission.
type File struct {
	Field    string
	Filename string
	MIME     string
	Content  []byte
}

// Client performs authenticated calls against the content API.
type Client struct {
	baseURL    string
	token      TokenFunc
	httpClient *http.Client
	collector  *perf.Collector
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCollector records upstream call timings to the given collector.
func WithCollector(col *perf.Collector) Option {
	return func(c *Client) { c.collector = col }
}

// NewClient creates a Client for the given base URL. token may be nil for a
// purely public client.
func NewClient(baseURL string, token TokenFunc, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// AssetURL resolves a server-relative stored path (image, PDF) into an
// absolute URL. Absolute paths are returned unchanged.
func (c *Client) AssetURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Get performs an authenticated GET and returns the envelope's data payload.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Op: "GET " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, "GET "+path)
}

// GetJSON performs a GET and unmarshals the data payload into dest.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, dest any) error {
	data, err := c.Get(ctx, path, params)
	if err != nil {
		return err
	}
	if dest == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &Error{Op: "GET " + path, Err: fmt.Errorf("parsing response: %w", err)}
	}
	return nil
}

// Post performs an authenticated POST with a JSON body and returns the
// envelope's data payload.
func (c *Client) Post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Op: "POST " + path, Err: fmt.Errorf("marshaling body: %w", err)}
		}
		bodyReader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+strings.TrimLeft(path, "/"), bodyReader)
	if err != nil {
		return nil, &Error{Op: "POST " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, "POST "+path)
}

// PostMultipart performs an authenticated POST with multipart form encoding.
// Mutations carrying an attachment use this; fields are already flattened to
// indexed keys by the caller.
func (c *Client) PostMultipart(ctx context.Context, path string, fields url.Values, files []File) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(key, v); err != nil {
				return nil, &Error{Op: "POST " + path, Err: fmt.Errorf("encoding form: %w", err)}
			}
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		h.Set("Content-Type", f.MIME)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, &Error{Op: "POST " + path, Err: fmt.Errorf("encoding file part: %w", err)}
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, &Error{Op: "POST " + path, Err: fmt.Errorf("writing file part: %w", err)}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Op: "POST " + path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+strings.TrimLeft(path, "/"), &buf)
	if err != nil {
		return nil, &Error{Op: "POST " + path, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, "POST "+path)
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/"+strings.TrimLeft(path, "/"), nil)
	if err != nil {
		return &Error{Op: "DELETE " + path, Err: err}
	}
	_, err = c.do(req, "DELETE "+path)
	return err
}

// do executes the request, applies the bearer token, and unwraps the
// envelope. Any HTTP error or status:false envelope becomes an *Error.
func (c *Client) do(req *http.Request, op string) (json.RawMessage, error) {
	if c.token != nil {
		if tok := c.token(req.Context()); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.record(op, start)
	if err != nil {
		slog.Error("api_transport_error", "op", op, "error", err)
		return nil, &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, HTTPStatus: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	var env Envelope
	if len(body) > 0 {
		// An unparseable body on an HTTP error is still reported as a failure
		// with whatever message we can recover.
		if jsonErr := json.Unmarshal(body, &env); jsonErr != nil {
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return nil, &Error{Op: op, HTTPStatus: resp.StatusCode, Message: truncate(string(body), 200)}
			}
			return nil, &Error{Op: op, HTTPStatus: resp.StatusCode, Err: fmt.Errorf("parsing envelope: %w", jsonErr)}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Op: op, HTTPStatus: resp.StatusCode, Message: env.Message}
	}
	if !env.Status {
		slog.Warn("api_status_false", "op", op, "message", env.Message)
		return nil, &Error{Op: op, HTTPStatus: resp.StatusCode, Message: env.Message}
	}
	return env.Data, nil
}

func (c *Client) record(op string, start time.Time) {
	if c.collector == nil {
		return
	}
	c.collector.Record(perf.Entry{
		Kind:       perf.KindUpstream,
		Path:       op,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Timestamp:  start,
	})
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
