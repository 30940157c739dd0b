package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rooftopcms/rooftop"
)

// Compile-time interface verification.
var _ rooftop.ContentService = (*ContentService)(nil)

const contentColumns = `id, type, slug, parent_id, status, title, body, excerpt, path, content_hash, created_at, updated_at`

// ContentService implements rooftop.ContentService using SQLite.
type ContentService struct {
	db *DB
}

// NewContentService creates a new ContentService.
func NewContentService(db *DB) *ContentService {
	return &ContentService{db: db}
}

// CreateContent creates a new content item.
func (s *ContentService) CreateContent(ctx context.Context, c *rooftop.Content) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Status == "" {
		c.Status = rooftop.StatusPublish
	}

	if c.Path == "" {
		path, err := s.permalink(ctx, c)
		if err != nil {
			return err
		}
		c.Path = path
	} else {
		if _, err := s.parent(ctx, c.ParentID); err != nil {
			return err
		}
		c.Path = rooftop.NormalizePath(c.Path)
	}
	if err := s.checkPathFree(ctx, c.Path, 0); err != nil {
		return err
	}

	now := s.db.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.ContentHash = hashContent(c.Body)

	id := nullID(c.ID)
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO contents (`+contentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, c.Type, c.Slug, nullID(c.ParentID), c.Status, c.Title, c.Body, c.Excerpt, c.Path,
		c.ContentHash, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return err
	}

	if c.ID == 0 {
		c.ID, err = result.LastInsertId()
		if err != nil {
			return err
		}
	}
	return nil
}

// FindContentByID retrieves a content item by ID.
func (s *ContentService) FindContentByID(ctx context.Context, id int64) (*rooftop.Content, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM contents WHERE id = ?`, id)
	c, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, rooftop.Errorf(rooftop.ENOTFOUND, "content not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindContents retrieves content matching the filter, ordered by id.
func (s *ContentService) FindContents(ctx context.Context, filter rooftop.ContentFilter) ([]*rooftop.Content, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + contentColumns + " FROM contents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, *filter.Type)
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}
	if filter.ParentID != nil {
		if *filter.ParentID == 0 {
			query.WriteString(" AND parent_id IS NULL")
		} else {
			query.WriteString(" AND parent_id = ?")
			args = append(args, *filter.ParentID)
		}
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []*rooftop.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}

	return contents, rows.Err()
}

// UpdateContent updates an existing content item. Changing the slug or the
// parent re-derives the path unless a path is given, and descendants whose
// paths nest under the old path are moved along with it.
func (s *ContentService) UpdateContent(ctx context.Context, id int64, upd rooftop.ContentUpdate) (*rooftop.Content, error) {
	c, err := s.FindContentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldPath := c.Path

	rederive := false
	if upd.Slug != nil {
		c.Slug = *upd.Slug
		rederive = true
	}
	if upd.ParentID != nil {
		c.ParentID = *upd.ParentID
		rederive = true
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Body != nil {
		c.Body = *upd.Body
		c.ContentHash = hashContent(c.Body)
	}
	if upd.Excerpt != nil {
		c.Excerpt = *upd.Excerpt
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if upd.ParentID != nil && c.ParentID != 0 {
		if err := s.checkNotDescendant(ctx, c.ID, c.ParentID); err != nil {
			return nil, err
		}
	}

	switch {
	case upd.Path != nil:
		if _, err := s.parent(ctx, c.ParentID); err != nil {
			return nil, err
		}
		c.Path = rooftop.NormalizePath(*upd.Path)
	case rederive:
		if c.Path, err = s.permalink(ctx, c); err != nil {
			return nil, err
		}
	}
	if c.Path != oldPath {
		if err := s.checkPathFree(ctx, c.Path, c.ID); err != nil {
			return nil, err
		}
	}

	c.UpdatedAt = s.db.now()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE contents
		SET slug = ?, parent_id = ?, status = ?, title = ?, body = ?, excerpt = ?, path = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, c.Slug, nullID(c.ParentID), c.Status, c.Title, c.Body, c.Excerpt, c.Path, c.ContentHash,
		formatTime(c.UpdatedAt), c.ID); err != nil {
		return nil, err
	}

	if c.Path != oldPath && oldPath != "/" {
		if _, err := tx.ExecContext(ctx, `
			UPDATE contents
			SET path = ? || substr(path, ?), updated_at = ?
			WHERE path LIKE ? ESCAPE '\'
		`, c.Path, utf8.RuneCountInString(oldPath)+1, formatTime(c.UpdatedAt), escapeLike(oldPath)+"/%"); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteContent permanently removes a content item. Its children become
// top-level items and keep their paths.
func (s *ContentService) DeleteContent(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM contents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return rooftop.Errorf(rooftop.ENOTFOUND, "content not found")
	}

	return nil
}

// parent returns the parent item, nil for top-level items, or EINVALID if
// the parent does not exist.
func (s *ContentService) parent(ctx context.Context, parentID int64) (*rooftop.Content, error) {
	if parentID == 0 {
		return nil, nil
	}
	p, err := s.FindContentByID(ctx, parentID)
	if rooftop.ErrorCode(err) == rooftop.ENOTFOUND {
		return nil, rooftop.Errorf(rooftop.EINVALID, "parent %d not found", parentID)
	}
	return p, err
}

// permalink derives the default path of c, nesting it under its parent.
func (s *ContentService) permalink(ctx context.Context, c *rooftop.Content) (string, error) {
	p, err := s.parent(ctx, c.ParentID)
	if err != nil {
		return "", err
	}
	var ancestors []string
	if p != nil {
		ancestors = rooftop.PathSegments(p.Path)
	}
	return rooftop.Permalink(c.Type, c.Slug, ancestors), nil
}

// checkPathFree returns ECONFLICT if another item than id owns path.
func (s *ContentService) checkPathFree(ctx context.Context, path string, id int64) error {
	var n int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contents WHERE path = ? AND id != ?", path, id,
	).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return rooftop.Errorf(rooftop.ECONFLICT, "path %s already in use", path)
	}
	return nil
}

// checkNotDescendant returns EINVALID if parentID is id or one of its descendants.
func (s *ContentService) checkNotDescendant(ctx context.Context, id, parentID int64) error {
	chain, err := ancestorChain(ctx, s.db, parentID, "")
	if err != nil {
		return err
	}
	for _, ancestor := range append(chain, parentID) {
		if ancestor == id {
			return rooftop.Errorf(rooftop.EINVALID, "content %d cannot be nested under its own descendant", id)
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContent(row scanner) (*rooftop.Content, error) {
	var c rooftop.Content
	var parentID sql.NullInt64
	var createdAt, updatedAt string

	if err := row.Scan(&c.ID, &c.Type, &c.Slug, &parentID, &c.Status, &c.Title, &c.Body,
		&c.Excerpt, &c.Path, &c.ContentHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.ParentID = parentID.Int64

	var err error
	if c.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
