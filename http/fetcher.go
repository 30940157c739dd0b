// Package http implements the rooftop REST surface over net/http, plus an
// HTTP fetcher for rewriting remote fragments.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rooftopcms/rooftop"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxFetchBytes caps the size of a fetched fragment.
const DefaultMaxFetchBytes = 10 << 20

// userAgent identifies fetches in remote access logs.
const userAgent = "rooftop/1.0"

// Ensure Fetcher implements rooftop.Fetcher at compile time.
var _ rooftop.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML fragments from URLs using HTTP requests.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets the largest body Fetch accepts.
// Defaults to DefaultMaxFetchBytes.
func WithMaxBytes(n int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxFetchBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch retrieves the body of the given URL.
//
// A 404 is ENOTFOUND. Bodies that are not text, or that are larger than the
// configured limit, are EINVALID rather than being truncated.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", rooftop.Errorf(rooftop.EINVALID, "invalid url %q", url)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html, text/plain;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", rooftop.Errorf(rooftop.ENOTFOUND, "nothing found at %s", url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err != nil || !strings.HasPrefix(mt, "text/") {
			return "", rooftop.Errorf(rooftop.EINVALID, "%s is %s, not an HTML fragment", url, ct)
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBytes {
		return "", rooftop.Errorf(rooftop.EINVALID, "%s is larger than %d bytes", url, f.maxBytes)
	}

	return string(body), nil
}

// Close is a no-op; http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}
