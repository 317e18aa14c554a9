package placeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/placeholder-collector/pkg/httpclient"
)

const defaultTimeout = 15 * time.Second

// Client issues typed requests against a fixed placeholder API base URL.
// It is constructed explicitly and safe for concurrent use: both fields
// are immutable after construction.
type Client struct {
	baseURL string
	http    httpclient.Client
}

// New builds a client for the given base URL. A nil transport falls back
// to the default resty-backed client.
func New(baseURL string, transport httpclient.Client) *Client {
	if transport == nil {
		transport = httpclient.NewRestyClient(defaultTimeout)
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    transport,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Result carries either a decoded value or a classified failure. The
// stream-style operations deliver failures as values, never as a closed
// channel with an error.
type Result[T any] struct {
	Value T
	Err   *Error
}

// Get issues a GET against the endpoint with optional query parameters
// and decodes the JSON response into T. All failures are *Error values.
func Get[T any](ctx context.Context, c *Client, ep Endpoint, params map[string]string) (T, error) {
	var zero T

	target, cerr := requestURL(c, ep, params)
	if cerr != nil {
		return zero, cerr
	}

	resp, err := c.http.Get(ctx, target, map[string]string{"Accept": "application/json"})
	if err != nil {
		return zero, NewNetworkError(fmt.Errorf("get %s: %w", ep.Path(), err))
	}

	return decodeResponse[T](ep, resp)
}

// GetAsync is the stream-style variant of Get. It returns a channel that
// delivers exactly one Result and is then closed.
func GetAsync[T any](ctx context.Context, c *Client, ep Endpoint, params map[string]string) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		value, err := Get[T](ctx, c, ep, params)
		if err != nil {
			out <- Result[T]{Err: asClientError(err)}
			return
		}
		out <- Result[T]{Value: value}
	}()
	return out
}

// Post serializes body to JSON, issues a POST against the endpoint, and
// decodes the JSON response into T. A body that cannot be serialized
// yields an invalid-request failure without any network call.
func Post[T any](ctx context.Context, c *Client, ep Endpoint, body any) (T, error) {
	var zero T

	target, cerr := requestURL(c, ep, nil)
	if cerr != nil {
		return zero, cerr
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, NewInvalidRequestError("encode request body", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	resp, err := c.http.Post(ctx, target, payload, headers)
	if err != nil {
		return zero, NewNetworkError(fmt.Errorf("post %s: %w", ep.Path(), err))
	}

	return decodeResponse[T](ep, resp)
}

// requestURL composes base URL, endpoint path, and query parameters.
func requestURL(c *Client, ep Endpoint, params map[string]string) (string, *Error) {
	if c == nil || c.baseURL == "" {
		return "", NewInvalidRequestError("base URL is not configured", nil)
	}

	parsed, err := url.Parse(c.baseURL + ep.Path())
	if err != nil {
		return "", NewInvalidRequestError(fmt.Sprintf("build URL for %s", ep.Path()), err)
	}

	if len(params) > 0 {
		q := parsed.Query()
		for key, value := range params {
			q.Set(key, value)
		}
		parsed.RawQuery = q.Encode()
	}

	return parsed.String(), nil
}

// decodeResponse adapts a raw transport response into a typed value.
func decodeResponse[T any](ep Endpoint, resp httpclient.Response) (T, error) {
	var zero T

	body := resp.Body()
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return zero, NewNetworkError(fmt.Errorf("%s returned status %d body: %s", ep.Path(), code, responseSnippet(body)))
	}
	if len(body) == 0 {
		return zero, NewNoResponseError(ep.Path())
	}

	var value T
	if err := json.Unmarshal(body, &value); err != nil {
		return zero, NewDecodeError(fmt.Errorf("decode %s response: %w", ep.Path(), err))
	}
	return value, nil
}

// asClientError coerces any error returned by the client into *Error.
func asClientError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return NewNetworkError(err)
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
