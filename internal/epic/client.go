package epic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// LatestFetcher is implemented by *Client and can be stubbed in tests.
type LatestFetcher interface {
	FetchLatest(ctx context.Context) (Record, error)
}

// ImageFetcher is implemented by *Client and can be stubbed in tests.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageLocal string) ([]byte, string, error)
}

var (
	_ LatestFetcher = (*Client)(nil)
	_ ImageFetcher  = (*Client)(nil)
)

const (
	// DefaultOrigin is the backend's local development address. Relative
	// request URLs resolve against it when no origin is configured.
	DefaultOrigin    = "http://127.0.0.1:5000"
	defaultUserAgent = "epicview/0.1"
	latestPath       = "/api/latest"
	maxImageBytes    = 32 << 20
)

// Options configure a Client.
type Options struct {
	Base      string        // BASE prefix, empty for same-origin
	Origin    string        // root for relative URLs; empty uses DefaultOrigin
	Timeout   time.Duration // zero leaves timeouts to the transport
	UserAgent string
}

// Client talks to the Earth-image backend.
type Client struct {
	base      string
	origin    *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for the given options.
func NewClient(opts Options) (*Client, error) {
	origin, err := parseOrigin(opts.Origin)
	if err != nil {
		return nil, err
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		base:      strings.TrimRight(strings.TrimSpace(opts.Base), "/"),
		origin:    origin,
		http:      &http.Client{Timeout: opts.Timeout},
		userAgent: ua,
	}, nil
}

// Base returns the configured BASE prefix.
func (c *Client) Base() string {
	if c == nil {
		return ""
	}
	return c.base
}

// FetchLatest retrieves the most recent record from {BASE}/api/latest.
func (c *Client) FetchLatest(ctx context.Context) (Record, error) {
	if c == nil {
		return Record{}, &FetchError{Message: "client is nil"}
	}
	resp, err := c.get(ctx, c.base+latestPath, "application/json")
	if err != nil {
		return Record{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return Record{}, &FetchError{Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	return rec, nil
}

// FetchImage retrieves the image served at {BASE}{imageLocal}. It returns the
// body and the response content type.
func (c *Client) FetchImage(ctx context.Context, imageLocal string) ([]byte, string, error) {
	if c == nil {
		return nil, "", &FetchError{Message: "client is nil"}
	}
	if strings.TrimSpace(imageLocal) == "" {
		return nil, "", &FetchError{Message: "image path is empty"}
	}
	resp, err := c.get(ctx, ImageSource(c.base, imageLocal), "image/*")
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", transportError(err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// ImageURL returns the absolute URL the client fetches for imageLocal.
func (c *Client) ImageURL(imageLocal string) string {
	if c == nil {
		return ImageSource("", imageLocal)
	}
	u, err := c.resolve(ImageSource(c.base, imageLocal))
	if err != nil {
		return ImageSource(c.base, imageLocal)
	}
	return u.String()
}

// ImageSource joins BASE and a backend-relative image path exactly as a page
// would in an <img src> attribute.
func ImageSource(base, imageLocal string) string {
	return base + imageLocal
}

func (c *Client) get(ctx context.Context, raw, accept string) (*http.Response, error) {
	reqURL, err := c.resolve(raw)
	if err != nil {
		return nil, &FetchError{Message: fmt.Sprintf("invalid url %q: %v", raw, err), Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &FetchError{Message: fmt.Sprintf("create request: %v", err), Err: err}
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, statusError(resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) resolve(raw string) (*url.URL, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if ref.IsAbs() {
		return ref, nil
	}
	return c.origin.ResolveReference(ref), nil
}

func parseOrigin(origin string) (*url.URL, error) {
	trimmed := strings.TrimSpace(origin)
	if trimmed == "" {
		trimmed = DefaultOrigin
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse origin %q: %w", origin, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse origin %q: missing host", origin)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
