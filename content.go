package rooftop

import (
	"context"
	"time"
)

// Content statuses.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
)

// Content represents a stored content item: a post, a page or an instance
// of a custom content type.
type Content struct {
	ID          int64     `json:"id" yaml:"id"`
	Type        string    `json:"type" yaml:"type"`
	Slug        string    `json:"slug" yaml:"slug"`
	ParentID    int64     `json:"parent" yaml:"parent"`
	Status      string    `json:"status" yaml:"status"`
	Title       string    `json:"title" yaml:"title"`
	Body        string    `json:"content" yaml:"content"`
	Excerpt     string    `json:"excerpt" yaml:"excerpt"`
	Path        string    `json:"path" yaml:"path"`
	ContentHash string    `json:"contentHash" yaml:"-"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"-"`
}

// Validate returns an error if the content contains invalid fields.
func (c *Content) Validate() error {
	if c.Type == "" {
		return Errorf(EINVALID, "content type required")
	}
	if c.Slug == "" {
		return Errorf(EINVALID, "content slug required")
	}
	if c.ParentID != 0 && c.ParentID == c.ID {
		return Errorf(EINVALID, "content cannot be its own parent")
	}
	return nil
}

// ContentService represents a service for managing content.
type ContentService interface {
	// CreateContent creates a new content item. The id is assigned by the
	// store unless set, and an empty Path is derived from the permalink rules.
	CreateContent(ctx context.Context, c *Content) error

	// FindContentByID retrieves a content item by ID.
	// Returns ENOTFOUND if the item does not exist.
	FindContentByID(ctx context.Context, id int64) (*Content, error)

	// FindContents retrieves content matching the filter.
	FindContents(ctx context.Context, filter ContentFilter) ([]*Content, error)

	// UpdateContent updates an existing content item.
	// Returns ENOTFOUND if the item does not exist.
	UpdateContent(ctx context.Context, id int64, upd ContentUpdate) (*Content, error)

	// DeleteContent permanently removes a content item.
	// Returns ENOTFOUND if the item does not exist.
	DeleteContent(ctx context.Context, id int64) error
}

// ContentFilter represents a filter for FindContents.
type ContentFilter struct {
	ID       *int64  `json:"id"`
	Type     *string `json:"type"`
	Slug     *string `json:"slug"`
	ParentID *int64  `json:"parent"`
	Status   *string `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ContentUpdate represents fields that can be updated on a content item.
type ContentUpdate struct {
	Slug     *string `json:"slug"`
	ParentID *int64  `json:"parent"`
	Status   *string `json:"status"`
	Title    *string `json:"title"`
	Body     *string `json:"content"`
	Excerpt  *string `json:"excerpt"`
	Path     *string `json:"path"`
}
