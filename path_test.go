package rooftop_test

import (
	"net/url"
	"testing"

	"github.com/rooftopcms/rooftop"
	"github.com/stretchr/testify/assert"
)

func TestPathSegments(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"section", "sub", "page"}, rooftop.PathSegments("/section//sub/page/"))
	assert.Empty(t, rooftop.PathSegments(""))
	assert.Empty(t, rooftop.PathSegments("/"))
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/", rooftop.NormalizePath(""))
	assert.Equal(t, "/", rooftop.NormalizePath("//"))
	assert.Equal(t, "/about", rooftop.NormalizePath("about/"))
	assert.Equal(t, "/section/sub/page", rooftop.NormalizePath("/section/sub/page/"))
}

func TestClassifyPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want rooftop.PathClass
	}{
		{"empty path is the root page", "", rooftop.PathClass{Type: "page"}},
		{"slash is the root page", "/", rooftop.PathClass{Type: "page"}},
		{"one segment is a page", "/about", rooftop.PathClass{Type: "page", Slug: "about"}},
		{"two segments is a post", "/news/hello-world/", rooftop.PathClass{Type: "post", Slug: "hello-world"}},
		{"three segments names the type", "/archives/recipe/pancakes", rooftop.PathClass{Type: "recipe", Slug: "pancakes"}},
		{"extra segments are ignored", "/archives/recipe/pancakes/print", rooftop.PathClass{Type: "recipe", Slug: "pancakes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rooftop.ClassifyPath(tt.path))
		})
	}
}

func TestAncestorSlugs(t *testing.T) {
	t.Parallel()

	t.Run("takes segments preceding the final one", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"section", "sub"}, rooftop.AncestorSlugs("/section/sub/page", 2))
	})

	t.Run("takes the nearest segments when fewer ancestors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"sub"}, rooftop.AncestorSlugs("/section/sub/page/", 1))
	})

	t.Run("truncates when the path is too short", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"sub"}, rooftop.AncestorSlugs("/sub/page", 3))
	})

	t.Run("returns nothing for single segment paths", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, rooftop.AncestorSlugs("/page", 1))
		assert.Empty(t, rooftop.AncestorSlugs("/section/page", 0))
	})
}

func TestPermalink(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/about", rooftop.Permalink("page", "about", nil))
	assert.Equal(t, "/section/sub/page", rooftop.Permalink("page", "page", []string{"section", "sub"}))
	assert.Equal(t, "/post/hello", rooftop.Permalink("post", "hello", nil))
	assert.Equal(t, "/recipe/pancakes", rooftop.Permalink("recipe", "pancakes", nil))
}

func TestQueryContentID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query  string
		wantID int64
		wantOK bool
	}{
		{"p=12", 12, true},
		{"page_id=7", 7, true},
		{"p=12&page_id=7", 12, true},
		{"p=abc", 0, false},
		{"p=-1", 0, false},
		{"s=search", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		q, err := url.ParseQuery(tt.query)
		assert.NoError(t, err)

		id, ok := rooftop.QueryContentID(q)

		assert.Equal(t, tt.wantID, id, tt.query)
		assert.Equal(t, tt.wantOK, ok, tt.query)
	}
}
