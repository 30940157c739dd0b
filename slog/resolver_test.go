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

func TestLoggingResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("logs kind and id at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Resolver{
			ResolveFn: func(_ context.Context, rawURL string, _ string) (*rooftop.LinkTarget, error) {
				return &rooftop.LinkTarget{Kind: rooftop.LinkContentItem, URL: rawURL, Type: "post", ID: 12}, nil
			},
		}

		target, err := rslog.NewLoggingResolver(inner, logger).
			Resolve(context.Background(), "http://example.com/posts/12", "example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(12), target.ID)
		output := buf.String()
		assert.Contains(t, output, "resolve link")
		assert.Contains(t, output, "url=http://example.com/posts/12")
		assert.Contains(t, output, "kind=content")
		assert.Contains(t, output, "id=12")
		assert.Contains(t, output, "duration=")
	})

	t.Run("stays quiet at info level on success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := mock.ResolverMap(nil)

		_, err := rslog.NewLoggingResolver(inner, logger).
			Resolve(context.Background(), "https://other.org", "example.com")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(context.Context, string, string) (*rooftop.LinkTarget, error) {
				return nil, errors.New("lookup failed")
			},
		}

		_, err := rslog.NewLoggingResolver(inner, logger).
			Resolve(context.Background(), "http://example.com/x", "example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), `err="lookup failed"`)
	})
}

func TestLoggingRewriter_Rewrite(t *testing.T) {
	t.Parallel()

	t.Run("logs mode and sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Rewriter{
			RewriteFn: func(context.Context, string, rooftop.Resolver, string, rooftop.OutputMode) (string, error) {
				return "[link]", nil
			},
		}

		out, err := rslog.NewLoggingRewriter(inner, logger).Rewrite(context.Background(),
			"<a>hello</a>", mock.ResolverMap(nil), "http://example.com", rooftop.OutputShortcode)

		require.NoError(t, err)
		assert.Equal(t, "[link]", out)
		output := buf.String()
		assert.Contains(t, output, "rewrite links")
		assert.Contains(t, output, "mode=shortcode")
		assert.Contains(t, output, "in_bytes=12")
		assert.Contains(t, output, "out_bytes=6")
	})
}

func TestLoggingSanitiser(t *testing.T) {
	t.Parallel()

	t.Run("logs content id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ResponseSanitiser{
			SanitiseContentFn: func(_ context.Context, req *rooftop.Request) (rooftop.Response, error) {
				return rooftop.Response{ID: req.Content.ID}, nil
			},
		}
		req := &rooftop.Request{Host: "example.com", Content: &rooftop.Content{ID: 5, Type: "post"}}

		resp, err := rslog.NewLoggingSanitiser(inner, logger).SanitiseContent(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
		assert.Contains(t, buf.String(), "sanitise content")
		assert.Contains(t, buf.String(), "id=5")
	})

	t.Run("logs menu slug and item count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ResponseSanitiser{
			SanitiseMenuFn: func(context.Context, *rooftop.Request, *rooftop.Menu) (*rooftop.MenuResponse, error) {
				return &rooftop.MenuResponse{}, nil
			},
		}
		menu := &rooftop.Menu{Slug: "main", Items: []*rooftop.MenuItem{{}, {}}}

		_, err := rslog.NewLoggingSanitiser(inner, logger).SanitiseMenu(context.Background(), &rooftop.Request{Host: "example.com"}, menu)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "menu=main")
		assert.Contains(t, buf.String(), "items=2")
	})
}
