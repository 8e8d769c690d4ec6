package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL points at the public ViaCEP service.
const DefaultBaseURL = "https://viacep.com.br"

// maxBodyBytes caps how much of a lookup response is read.
const maxBodyBytes = 1 << 20

// Lookuper resolves a postal code into an Address.
type Lookuper interface {
	Lookup(ctx context.Context, code string) (Address, error)
}

// LookupFunc adapts a plain function to Lookuper.
type LookupFunc func(ctx context.Context, code string) (Address, error)

func (f LookupFunc) Lookup(ctx context.Context, code string) (Address, error) {
	return f(ctx, code)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the service root, e.g. for an httptest server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient injects the HTTP client used for lookups.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every lookup.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(agent)
	}
}

// Client queries a ViaCEP compatible service.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

var _ Lookuper = (*Client)(nil)

// NewClient builds a client against DefaultBaseURL using http.DefaultClient
// unless overridden.
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// BaseURL reports the service root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the lookup URL for code.
func (c *Client) Endpoint(code string) string {
	return c.baseURL + "/ws/" + url.PathEscape(code) + "/json/"
}

// Lookup performs a single GET for code. Code length is not checked here;
// callers gate on ValidLength before spending a request.
func (c *Client) Lookup(ctx context.Context, code string) (Address, error) {
	if ctx == nil {
		return Address{}, errors.New("cep: context is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(code), nil)
	if err != nil {
		return Address{}, &LookupError{Category: ErrorTransport, Code: code, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return Address{}, &LookupError{Category: ErrorTransport, Code: code, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return Address{}, &LookupError{Category: ErrorTransport, Code: code, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Address{}, &LookupError{Category: ErrorStatus, Code: code, StatusCode: res.StatusCode}
	}

	return decodeAddress(code, body)
}

var errNullBody = errors.New("response body is null")

// decodeAddress treats the mere presence of "erro" as not found, whatever its
// value.
func decodeAddress(code string, body []byte) (Address, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Address{}, &LookupError{Category: ErrorDecode, Code: code, Err: err}
	}
	if raw == nil {
		return Address{}, &LookupError{Category: ErrorDecode, Code: code, Err: errNullBody}
	}
	if _, flagged := raw["erro"]; flagged {
		return Address{}, ErrNotFound
	}

	var addr Address
	if err := json.Unmarshal(body, &addr); err != nil {
		return Address{}, &LookupError{Category: ErrorDecode, Code: code, Err: fmt.Errorf("address fields: %w", err)}
	}
	return addr, nil
}
