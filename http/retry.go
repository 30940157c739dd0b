package http

import (
	"context"
	"time"

	"github.com/rooftopcms/rooftop"
)

// Ensure RetryFetcher implements rooftop.Fetcher at compile time.
var _ rooftop.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher retries failed fetches with backoff. ENOTFOUND and EINVALID
// failures are final and returned at once.
type RetryFetcher struct {
	next   rooftop.Fetcher
	delays []time.Duration
}

// NewRetryFetcher wraps next, waiting delays[i] before retry i+1.
// A nil delays uses DefaultRetryDelays.
func NewRetryFetcher(next rooftop.Fetcher, delays []time.Duration) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{next: next, delays: delays}
}

// Fetch tries up to len(delays)+1 times and returns the last error.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		switch rooftop.ErrorCode(err) {
		case rooftop.ENOTFOUND, rooftop.EINVALID:
			return "", err
		}
		if attempt >= len(f.delays) {
			return "", lastErr
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}
}

// Close closes the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
