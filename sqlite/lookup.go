package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/url"

	"github.com/rooftopcms/rooftop"
)

// Compile-time interface verification.
var _ rooftop.ContentLookup = (*ContentLookup)(nil)

// maxAncestorDepth bounds the parent walk.
const maxAncestorDepth = 64

// ContentLookup implements rooftop.ContentLookup using SQLite.
type ContentLookup struct {
	db *DB
}

// NewContentLookup creates a new ContentLookup.
func NewContentLookup(db *DB) *ContentLookup {
	return &ContentLookup{db: db}
}

// FindContentIDByURL returns the id of the item addressed by rawURL, either
// through a ?p= or ?page_id= query or through its stored path.
func (l *ContentLookup) FindContentIDByURL(ctx context.Context, rawURL string) (int64, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, rooftop.Errorf(rooftop.ENOTFOUND, "no content at %s", rawURL)
	}

	if id, ok := rooftop.QueryContentID(u.Query()); ok {
		return l.queryID(ctx, "SELECT id FROM contents WHERE id = ?", id)
	}

	return l.queryID(ctx, "SELECT id FROM contents WHERE path = ?", rooftop.NormalizePath(u.Path))
}

// FindContentIDBySlug returns the oldest item of contentType with slug.
func (l *ContentLookup) FindContentIDBySlug(ctx context.Context, contentType, slug string) (int64, error) {
	return l.queryID(ctx,
		"SELECT id FROM contents WHERE type = ? AND slug = ? ORDER BY id LIMIT 1",
		contentType, slug)
}

// FindContentMetadata returns the type and slug of an item.
func (l *ContentLookup) FindContentMetadata(ctx context.Context, id int64) (*rooftop.ContentMetadata, error) {
	meta := rooftop.ContentMetadata{ID: id}
	err := l.db.QueryRowContext(ctx, "SELECT type, slug FROM contents WHERE id = ?", id).
		Scan(&meta.Type, &meta.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, rooftop.Errorf(rooftop.ENOTFOUND, "content not found")
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// FindAncestors returns the ids of the item's ancestors of the same type,
// nearest parent first.
func (l *ContentLookup) FindAncestors(ctx context.Context, id int64, contentType string) ([]int64, error) {
	return ancestorChain(ctx, l.db, id, contentType)
}

func (l *ContentLookup) queryID(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	err := l.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, rooftop.Errorf(rooftop.ENOTFOUND, "content not found")
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ancestorChain walks the parent links of id, nearest parent first. When
// contentType is set the walk stops at the first parent of another type.
// Returns ENOTFOUND if id does not exist.
func ancestorChain(ctx context.Context, db *DB, id int64, contentType string) ([]int64, error) {
	rows, err := db.QueryContext(ctx, `
		WITH RECURSIVE chain(id, parent_id, depth) AS (
			SELECT id, parent_id, 0 FROM contents WHERE id = ?
			UNION ALL
			SELECT c.id, c.parent_id, chain.depth + 1
			FROM contents c JOIN chain ON c.id = chain.parent_id
			WHERE chain.depth < ? AND (? = '' OR c.type = ?)
		)
		SELECT id FROM chain ORDER BY depth
	`, id, maxAncestorDepth, contentType, contentType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var ancestor int64
		if err := rows.Scan(&ancestor); err != nil {
			return nil, err
		}
		ids = append(ids, ancestor)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, rooftop.Errorf(rooftop.ENOTFOUND, "content not found")
	}
	return ids[1:], nil
}
