package mock

import (
	"context"

	"github.com/rooftopcms/rooftop"
)

var _ rooftop.ContentLookup = (*ContentLookup)(nil)

// ContentLookup is a mock implementation of rooftop.ContentLookup.
type ContentLookup struct {
	FindContentIDByURLFn  func(ctx context.Context, rawURL string) (int64, error)
	FindContentIDBySlugFn func(ctx context.Context, contentType, slug string) (int64, error)
	FindContentMetadataFn func(ctx context.Context, id int64) (*rooftop.ContentMetadata, error)
	FindAncestorsFn       func(ctx context.Context, id int64, contentType string) ([]int64, error)
}

func (l *ContentLookup) FindContentIDByURL(ctx context.Context, rawURL string) (int64, error) {
	return l.FindContentIDByURLFn(ctx, rawURL)
}

func (l *ContentLookup) FindContentIDBySlug(ctx context.Context, contentType, slug string) (int64, error) {
	return l.FindContentIDBySlugFn(ctx, contentType, slug)
}

func (l *ContentLookup) FindContentMetadata(ctx context.Context, id int64) (*rooftop.ContentMetadata, error) {
	return l.FindContentMetadataFn(ctx, id)
}

func (l *ContentLookup) FindAncestors(ctx context.Context, id int64, contentType string) ([]int64, error) {
	return l.FindAncestorsFn(ctx, id, contentType)
}
