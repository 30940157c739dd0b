package mock

import (
	"context"

	"github.com/rooftopcms/rooftop"
)

var _ rooftop.MenuService = (*MenuService)(nil)

// MenuService is a mock implementation of rooftop.MenuService.
type MenuService struct {
	CreateMenuFn   func(ctx context.Context, menu *rooftop.Menu) error
	FindMenuByIDFn func(ctx context.Context, id int64) (*rooftop.Menu, error)
	FindMenusFn    func(ctx context.Context) ([]*rooftop.Menu, error)
	DeleteMenuFn   func(ctx context.Context, id int64) error
}

func (s *MenuService) CreateMenu(ctx context.Context, menu *rooftop.Menu) error {
	return s.CreateMenuFn(ctx, menu)
}

func (s *MenuService) FindMenuByID(ctx context.Context, id int64) (*rooftop.Menu, error) {
	return s.FindMenuByIDFn(ctx, id)
}

func (s *MenuService) FindMenus(ctx context.Context) ([]*rooftop.Menu, error) {
	return s.FindMenusFn(ctx)
}

func (s *MenuService) DeleteMenu(ctx context.Context, id int64) error {
	return s.DeleteMenuFn(ctx, id)
}

var _ rooftop.ResponseSanitiser = (*ResponseSanitiser)(nil)

// ResponseSanitiser is a mock implementation of rooftop.ResponseSanitiser.
type ResponseSanitiser struct {
	SanitiseContentFn func(ctx context.Context, req *rooftop.Request) (rooftop.Response, error)
	SanitiseMenuFn    func(ctx context.Context, req *rooftop.Request, menu *rooftop.Menu) (*rooftop.MenuResponse, error)
}

func (s *ResponseSanitiser) SanitiseContent(ctx context.Context, req *rooftop.Request) (rooftop.Response, error) {
	return s.SanitiseContentFn(ctx, req)
}

func (s *ResponseSanitiser) SanitiseMenu(ctx context.Context, req *rooftop.Request, menu *rooftop.Menu) (*rooftop.MenuResponse, error) {
	return s.SanitiseMenuFn(ctx, req, menu)
}
