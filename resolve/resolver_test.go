package resolve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rooftopcms/rooftop"
	"github.com/rooftopcms/rooftop/mock"
	"github.com/rooftopcms/rooftop/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookupWith returns a lookup that knows one page, id 11 at /section/sub/page,
// whose ancestors are reported nearest parent first.
func lookupWith(t *testing.T) *mock.ContentLookup {
	t.Helper()
	return &mock.ContentLookup{
		FindContentIDByURLFn: func(_ context.Context, rawURL string) (int64, error) {
			if rawURL == "http://example.com/section/sub/page" {
				return 11, nil
			}
			return 0, rooftop.Errorf(rooftop.ENOTFOUND, "no content at %s", rawURL)
		},
		FindContentIDBySlugFn: func(_ context.Context, contentType, slug string) (int64, error) {
			if contentType == "recipe" && slug == "pancakes" {
				return 21, nil
			}
			return 0, rooftop.Errorf(rooftop.ENOTFOUND, "no %s %s", contentType, slug)
		},
		FindContentMetadataFn: func(_ context.Context, id int64) (*rooftop.ContentMetadata, error) {
			switch id {
			case 11:
				return &rooftop.ContentMetadata{Type: "page", ID: 11, Slug: "page"}, nil
			case 21:
				return &rooftop.ContentMetadata{Type: "recipe", ID: 21, Slug: "pancakes"}, nil
			}
			return nil, rooftop.Errorf(rooftop.ENOTFOUND, "content not found")
		},
		FindAncestorsFn: func(_ context.Context, id int64, _ string) ([]int64, error) {
			if id == 11 {
				return []int64{7, 3}, nil
			}
			return nil, nil
		},
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("resolves content item with ancestors root first", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(lookupWith(t))

		target, err := r.Resolve(context.Background(), "http://example.com/section/sub/page", "example.com")

		require.NoError(t, err)
		assert.Equal(t, &rooftop.LinkTarget{
			Kind:      rooftop.LinkContentItem,
			URL:       "http://example.com/section/sub/page",
			Type:      "page",
			ID:        11,
			Slug:      "page",
			Path:      "/section/sub/page",
			Ancestors: []int64{3, 7},
		}, target)
	})

	t.Run("does not reorder the lookup's slice", func(t *testing.T) {
		t.Parallel()

		stored := []int64{7, 3}
		lookup := lookupWith(t)
		lookup.FindAncestorsFn = func(context.Context, int64, string) ([]int64, error) {
			return stored, nil
		}

		_, err := resolve.NewResolver(lookup).Resolve(context.Background(), "http://example.com/section/sub/page", "example.com")

		require.NoError(t, err)
		assert.Equal(t, []int64{7, 3}, stored)
	})

	t.Run("same host without content is a relative page", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(lookupWith(t))

		target, err := r.Resolve(context.Background(), "http://example.com/contact", "example.com")

		require.NoError(t, err)
		assert.Equal(t, rooftop.LinkRelativePage, target.Kind)
		assert.Equal(t, "/contact", target.Path)
	})

	t.Run("site root is a relative page", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(lookupWith(t))

		target, err := r.Resolve(context.Background(), "http://example.com", "example.com")

		require.NoError(t, err)
		assert.Equal(t, rooftop.LinkRelativePage, target.Kind)
		assert.Equal(t, "/", target.Path)
	})

	t.Run("host comparison ignores case", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(lookupWith(t))

		target, err := r.Resolve(context.Background(), "http://EXAMPLE.com/contact", "example.com")

		require.NoError(t, err)
		assert.Equal(t, rooftop.LinkRelativePage, target.Kind)
	})

	t.Run("other host is external and never looked up", func(t *testing.T) {
		t.Parallel()

		lookup := lookupWith(t)
		lookup.FindContentIDByURLFn = func(context.Context, string) (int64, error) {
			t.Fatal("lookup must not be called for external links")
			return 0, nil
		}

		target, err := resolve.NewResolver(lookup).Resolve(context.Background(), "https://other.org/section/sub/page", "example.com")

		require.NoError(t, err)
		assert.Equal(t, &rooftop.LinkTarget{Kind: rooftop.LinkExternal, URL: "https://other.org/section/sub/page"}, target)
	})

	t.Run("non web schemes are external", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(lookupWith(t))

		for _, raw := range []string{"mailto:team@example.com", "tel:+441234", "#top", "relative/path"} {
			target, err := r.Resolve(context.Background(), raw, "example.com")
			require.NoError(t, err)
			assert.Equal(t, rooftop.LinkExternal, target.Kind, raw)
		}
	})

	t.Run("root relative reference is same host", func(t *testing.T) {
		t.Parallel()

		lookup := lookupWith(t)
		lookup.FindContentIDByURLFn = func(_ context.Context, rawURL string) (int64, error) {
			assert.Equal(t, "/section/sub/page", rawURL)
			return 11, nil
		}

		target, err := resolve.NewResolver(lookup).Resolve(context.Background(), "/section/sub/page", "example.com")

		require.NoError(t, err)
		assert.Equal(t, rooftop.LinkContentItem, target.Kind)
	})

	t.Run("unparsable URL is unresolvable", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(lookupWith(t))

		target, err := r.Resolve(context.Background(), "http://example.com/%zz", "example.com")

		require.NoError(t, err)
		assert.Equal(t, &rooftop.LinkTarget{Kind: rooftop.LinkUnresolvable, URL: "http://example.com/%zz"}, target)
	})

	t.Run("missing metadata is an inconsistency", func(t *testing.T) {
		t.Parallel()

		lookup := lookupWith(t)
		lookup.FindContentMetadataFn = func(context.Context, int64) (*rooftop.ContentMetadata, error) {
			return nil, rooftop.Errorf(rooftop.ENOTFOUND, "content not found")
		}

		_, err := resolve.NewResolver(lookup).Resolve(context.Background(), "http://example.com/section/sub/page", "example.com")

		require.Error(t, err)
		assert.Equal(t, rooftop.EINCONSISTENT, rooftop.ErrorCode(err))
	})

	t.Run("missing ancestors are an inconsistency", func(t *testing.T) {
		t.Parallel()

		lookup := lookupWith(t)
		lookup.FindAncestorsFn = func(context.Context, int64, string) ([]int64, error) {
			return nil, rooftop.Errorf(rooftop.ENOTFOUND, "parent not found")
		}

		_, err := resolve.NewResolver(lookup).Resolve(context.Background(), "http://example.com/section/sub/page", "example.com")

		assert.Equal(t, rooftop.EINCONSISTENT, rooftop.ErrorCode(err))
	})

	t.Run("propagates lookup failures", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database is locked")
		lookup := lookupWith(t)
		lookup.FindContentIDByURLFn = func(context.Context, string) (int64, error) {
			return 0, dbErr
		}

		_, err := resolve.NewResolver(lookup).Resolve(context.Background(), "http://example.com/section/sub/page", "example.com")

		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestResolver_ResolveByPath(t *testing.T) {
	t.Parallel()

	t.Run("uses the archive segments as type and slug", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(lookupWith(t), resolve.WithMode(rooftop.ResolveByPath))

		target, err := r.Resolve(context.Background(), "http://example.com/archives/recipe/pancakes", "example.com")

		require.NoError(t, err)
		assert.Equal(t, rooftop.LinkContentItem, target.Kind)
		assert.Equal(t, "recipe", target.Type)
		assert.Equal(t, int64(21), target.ID)
		assert.Empty(t, target.Ancestors)
	})

	t.Run("single segment looks up a page", func(t *testing.T) {
		t.Parallel()

		var gotType, gotSlug string
		lookup := lookupWith(t)
		lookup.FindContentIDBySlugFn = func(_ context.Context, contentType, slug string) (int64, error) {
			gotType, gotSlug = contentType, slug
			return 0, rooftop.Errorf(rooftop.ENOTFOUND, "not found")
		}

		target, err := resolve.NewResolver(lookup, resolve.WithMode(rooftop.ResolveByPath)).
			Resolve(context.Background(), "http://example.com/about", "example.com")

		require.NoError(t, err)
		assert.Equal(t, "page", gotType)
		assert.Equal(t, "about", gotSlug)
		assert.Equal(t, rooftop.LinkRelativePage, target.Kind)
	})

	t.Run("root has no slug to look up", func(t *testing.T) {
		t.Parallel()

		lookup := lookupWith(t)
		lookup.FindContentIDBySlugFn = func(context.Context, string, string) (int64, error) {
			t.Fatal("root must not be looked up")
			return 0, nil
		}

		target, err := resolve.NewResolver(lookup, resolve.WithMode(rooftop.ResolveByPath)).
			Resolve(context.Background(), "http://example.com/", "example.com")

		require.NoError(t, err)
		assert.Equal(t, rooftop.LinkRelativePage, target.Kind)
	})
}
