// Package api implements a thin client for the X API v2.
//
// The client builds URLs and query parameters, executes requests through an
// authenticated http.Client, and passes the API's JSON documents through to
// stdout largely unmodified. It deliberately does not model the API's
// responses with typed structs: the CLI's contract is JSON passthrough.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/openclaw/xpost/internal/constants"
)

// ErrRequestFailed is wrapped by every error caused by a non-2xx response.
var ErrRequestFailed = errors.New("request failed")

// Document is a generic JSON document as returned by the API.
type Document = map[string]any

// RequestError carries the HTTP status and raw body of a failed request.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Body)
}

func (e *RequestError) Unwrap() error {
	return ErrRequestFailed
}

// Client is an X API v2 client bound to one authenticated http.Client.
type Client struct {
	http   *http.Client
	base   string
	out    io.Writer
	errOut io.Writer

	userID string // memoized /users/me id, one lookup per process
}

type options struct {
	baseURL string
	out     io.Writer
	errOut  io.Writer
}

// Options represents an optional function to override Client default values.
type Options func(*options)

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Options {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithOutput redirects the stdout and stderr writers.
func WithOutput(out, errOut io.Writer) Options {
	return func(o *options) {
		o.out = out
		o.errOut = errOut
	}
}

// New returns a client executing requests through httpClient.
func New(httpClient *http.Client, args ...Options) *Client {
	opts := options{
		baseURL: constants.APIBaseURL,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
	for _, opt := range args {
		opt(&opts)
	}

	return &Client{
		http:   httpClient,
		base:   opts.baseURL,
		out:    opts.out,
		errOut: opts.errOut,
	}
}

// Get issues a GET request against a v2 path.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (Document, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request with a JSON body against a v2 path.
func (c *Client) Post(ctx context.Context, path string, body any) (Document, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request with a JSON body against a v2 path.
func (c *Client) Put(ctx context.Context, path string, body any) (Document, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE request against a v2 path.
func (c *Client) Delete(ctx context.Context, path string) (Document, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// PostForm issues a form-encoded POST against an absolute URL. It exists for
// the single v1.1 endpoint the CLI still needs; the OAuth 1.0a transport
// signs the form fields.
func (c *Client) PostForm(ctx context.Context, absURL string, form url.Values) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, absURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.execute(req)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (Document, error) {
	u := c.base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.execute(req)
}

func (c *Client) execute(req *http.Request) (Document, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, nil
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	return doc, nil
}

// MyUserID returns the authenticated user's id. The lookup happens at most
// once per process.
func (c *Client) MyUserID(ctx context.Context) (string, error) {
	if c.userID != "" {
		return c.userID, nil
	}

	doc, err := c.Get(ctx, "/users/me", nil)
	if err != nil {
		return "", fmt.Errorf("could not get authenticated user: %w", err)
	}

	id, ok := dataField(doc, "id")
	if !ok {
		return "", fmt.Errorf("response to /users/me carries no user id")
	}
	c.userID = id
	return id, nil
}

// ResolveUsername resolves an @username (leading @ optional) to a user id.
func (c *Client) ResolveUsername(ctx context.Context, username string) (string, error) {
	target := Username(username)

	doc, err := c.Get(ctx, "/users/by/username/"+target, nil)
	if err != nil {
		return "", fmt.Errorf("could not resolve @%s: %w", target, err)
	}

	id, ok := dataField(doc, "id")
	if !ok {
		return "", fmt.Errorf("response for @%s carries no user id", target)
	}
	return id, nil
}

// Username strips an optional leading @.
func Username(s string) string {
	return strings.TrimPrefix(s, "@")
}

// dataField extracts a string field from the data object of a document.
func dataField(doc Document, field string) (string, bool) {
	data, ok := doc["data"].(map[string]any)
	if !ok {
		return "", false
	}
	v, ok := data[field].(string)
	return v, ok
}
