package sqlite_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/rooftopcms/rooftop"
	"github.com/rooftopcms/rooftop/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedTree stores /section/sub/page and /post/hello and returns their ids.
func seedTree(t *testing.T, db *sqlite.DB) (section, sub, page, post int64) {
	t.Helper()
	svc := sqlite.NewContentService(db)
	section = createContent(t, svc, &rooftop.Content{Type: "page", Slug: "section"}).ID
	sub = createContent(t, svc, &rooftop.Content{Type: "page", Slug: "sub", ParentID: section}).ID
	page = createContent(t, svc, &rooftop.Content{Type: "page", Slug: "page", ParentID: sub}).ID
	post = createContent(t, svc, &rooftop.Content{Type: "post", Slug: "hello"}).ID
	return section, sub, page, post
}

func TestContentLookup_FindContentIDByURL(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	_, _, page, post := seedTree(t, db)
	lookup := sqlite.NewContentLookup(db)

	t.Run("matches the stored path", func(t *testing.T) {
		for _, raw := range []string{
			"http://example.com/section/sub/page",
			"http://example.com/section/sub/page/",
			"/section//sub/page",
		} {
			id, err := lookup.FindContentIDByURL(context.Background(), raw)
			require.NoError(t, err, raw)
			assert.Equal(t, page, id, raw)
		}
	})

	t.Run("matches id queries", func(t *testing.T) {
		id, err := lookup.FindContentIDByURL(context.Background(), "http://example.com/?p="+strconv.FormatInt(post, 10))
		require.NoError(t, err)
		assert.Equal(t, post, id)

		id, err = lookup.FindContentIDByURL(context.Background(), "http://example.com/?page_id="+strconv.FormatInt(page, 10))
		require.NoError(t, err)
		assert.Equal(t, page, id)
	})

	t.Run("returns ENOTFOUND for unknown paths and ids", func(t *testing.T) {
		for _, raw := range []string{
			"http://example.com/contact",
			"http://example.com/?p=999",
			"http://example.com/",
		} {
			_, err := lookup.FindContentIDByURL(context.Background(), raw)
			assert.Equal(t, rooftop.ENOTFOUND, rooftop.ErrorCode(err), raw)
		}
	})
}

func TestContentLookup_FindContentIDBySlug(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	_, _, _, post := seedTree(t, db)
	lookup := sqlite.NewContentLookup(db)

	id, err := lookup.FindContentIDBySlug(context.Background(), "post", "hello")
	require.NoError(t, err)
	assert.Equal(t, post, id)

	_, err = lookup.FindContentIDBySlug(context.Background(), "page", "hello")
	assert.Equal(t, rooftop.ENOTFOUND, rooftop.ErrorCode(err))
}

func TestContentLookup_FindContentMetadata(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	_, _, page, _ := seedTree(t, db)
	lookup := sqlite.NewContentLookup(db)

	meta, err := lookup.FindContentMetadata(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, &rooftop.ContentMetadata{Type: "page", ID: page, Slug: "page"}, meta)

	_, err = lookup.FindContentMetadata(context.Background(), 999)
	assert.Equal(t, rooftop.ENOTFOUND, rooftop.ErrorCode(err))
}

func TestContentLookup_FindAncestors(t *testing.T) {
	t.Parallel()

	t.Run("returns nearest parent first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		section, sub, page, _ := seedTree(t, db)

		ancestors, err := sqlite.NewContentLookup(db).FindAncestors(context.Background(), page, "page")

		require.NoError(t, err)
		assert.Equal(t, []int64{sub, section}, ancestors)
	})

	t.Run("returns nothing for top level items", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		_, _, _, post := seedTree(t, db)

		ancestors, err := sqlite.NewContentLookup(db).FindAncestors(context.Background(), post, "post")

		require.NoError(t, err)
		assert.Empty(t, ancestors)
	})

	t.Run("stops at a parent of another type", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewContentService(db)
		page := createContent(t, svc, &rooftop.Content{Type: "page", Slug: "recipes"})
		recipe := createContent(t, svc, &rooftop.Content{Type: "recipe", Slug: "pancakes", ParentID: page.ID})

		ancestors, err := sqlite.NewContentLookup(db).FindAncestors(context.Background(), recipe.ID, "recipe")

		require.NoError(t, err)
		assert.Empty(t, ancestors)
	})

	t.Run("returns ENOTFOUND for unknown items", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		_, err := sqlite.NewContentLookup(db).FindAncestors(context.Background(), 1, "page")

		assert.Equal(t, rooftop.ENOTFOUND, rooftop.ErrorCode(err))
	})
}
