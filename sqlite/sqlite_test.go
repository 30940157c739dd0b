package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/rooftopcms/rooftop"
	"github.com/rooftopcms/rooftop/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

// createContent stores c and fails the test on error.
func createContent(t *testing.T, svc *sqlite.ContentService, c *rooftop.Content) *rooftop.Content {
	t.Helper()
	require.NoError(t, svc.CreateContent(context.Background(), c))
	return c
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		for _, table := range []string{"contents", "menus", "menu_items"} {
			var n int
			err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
			require.NoError(t, err, table)
		}
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		createContent(t, sqlite.NewContentService(db), &rooftop.Content{Type: "page", Slug: "about"})
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		found, err := sqlite.NewContentService(db).FindContents(context.Background(), rooftop.ContentFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
	})

	t.Run("enforces foreign keys", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		var on int
		require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&on))
		require.Equal(t, 1, on)
	})
}

func TestDB_Now(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	fixed := time.Date(2024, 3, 1, 12, 30, 45, 999, time.FixedZone("CET", 3600))
	db.Now = func() time.Time { return fixed }

	c := createContent(t, sqlite.NewContentService(db), &rooftop.Content{Type: "page", Slug: "about"})

	want := time.Date(2024, 3, 1, 11, 30, 45, 0, time.UTC)
	require.Equal(t, want, c.CreatedAt)
	require.Equal(t, want, c.UpdatedAt)
}
