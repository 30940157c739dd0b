package mock

import (
	"context"

	"github.com/rooftopcms/rooftop"
)

var _ rooftop.ContentService = (*ContentService)(nil)

// ContentService is a mock implementation of rooftop.ContentService.
type ContentService struct {
	CreateContentFn   func(ctx context.Context, c *rooftop.Content) error
	FindContentByIDFn func(ctx context.Context, id int64) (*rooftop.Content, error)
	FindContentsFn    func(ctx context.Context, filter rooftop.ContentFilter) ([]*rooftop.Content, error)
	UpdateContentFn   func(ctx context.Context, id int64, upd rooftop.ContentUpdate) (*rooftop.Content, error)
	DeleteContentFn   func(ctx context.Context, id int64) error
}

func (s *ContentService) CreateContent(ctx context.Context, c *rooftop.Content) error {
	return s.CreateContentFn(ctx, c)
}

func (s *ContentService) FindContentByID(ctx context.Context, id int64) (*rooftop.Content, error) {
	return s.FindContentByIDFn(ctx, id)
}

func (s *ContentService) FindContents(ctx context.Context, filter rooftop.ContentFilter) ([]*rooftop.Content, error) {
	return s.FindContentsFn(ctx, filter)
}

func (s *ContentService) UpdateContent(ctx context.Context, id int64, upd rooftop.ContentUpdate) (*rooftop.Content, error) {
	return s.UpdateContentFn(ctx, id, upd)
}

func (s *ContentService) DeleteContent(ctx context.Context, id int64) error {
	return s.DeleteContentFn(ctx, id)
}
