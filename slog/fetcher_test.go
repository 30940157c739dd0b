package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/rooftopcms/rooftop"
	"github.com/rooftopcms/rooftop/mock"
	rslog "github.com/rooftopcms/rooftop/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	t.Run("logs fragment size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fetcher := rslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "<p>Hello</p>", nil
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		html, err := fetcher.Fetch(context.Background(), "https://example.com/fragment.html")

		require.NoError(t, err)
		assert.Equal(t, "<p>Hello</p>", html)
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "url=https://example.com/fragment.html")
		assert.Contains(t, buf.String(), "bytes=12")
	})

	t.Run("logs failures with their code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fetcher := rslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", rooftop.Errorf(rooftop.ENOTFOUND, "nothing found at %s", url)
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := fetcher.Fetch(context.Background(), "https://example.com/missing")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "code=not_found")
		assert.NotContains(t, buf.String(), "bytes=")
	})

	t.Run("close reaches the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closeErr := errors.New("already closed")
		fetcher := rslog.NewLoggingFetcher(&mock.Fetcher{
			CloseFn: func() error { return closeErr },
		}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

		assert.ErrorIs(t, fetcher.Close(), closeErr)
	})
}
