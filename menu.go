package rooftop

import "context"

// Menu is a named, ordered list of navigation links.
type Menu struct {
	ID    int64       `json:"id" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	Slug  string      `json:"slug" yaml:"slug"`
	Items []*MenuItem `json:"items" yaml:"items"`
}

// MenuItem is one link of a menu.
type MenuItem struct {
	ID       int64  `json:"id" yaml:"id"`
	MenuID   int64  `json:"menu" yaml:"-"`
	ParentID int64  `json:"parent" yaml:"parent"`
	Title    string `json:"title" yaml:"title"`
	URL      string `json:"url" yaml:"url"`
	Position int    `json:"order" yaml:"order"`
}

// Validate returns an error if the menu or any of its items is invalid.
func (m *Menu) Validate() error {
	if m.Name == "" {
		return Errorf(EINVALID, "menu name required")
	}
	if m.Slug == "" {
		return Errorf(EINVALID, "menu slug required")
	}
	for i, item := range m.Items {
		if item.URL == "" {
			return Errorf(EINVALID, "menu item %d: url required", i)
		}
	}
	return nil
}

// MenuService represents a service for managing menus.
type MenuService interface {
	// CreateMenu creates a menu together with its items.
	// Returns ECONFLICT if a menu with the same slug exists.
	CreateMenu(ctx context.Context, menu *Menu) error

	// FindMenuByID retrieves a menu and its items ordered by position.
	// Returns ENOTFOUND if the menu does not exist.
	FindMenuByID(ctx context.Context, id int64) (*Menu, error)

	// FindMenus retrieves menus without their items.
	FindMenus(ctx context.Context) ([]*Menu, error)

	// DeleteMenu permanently removes a menu and its items.
	// Returns ENOTFOUND if the menu does not exist.
	DeleteMenu(ctx context.Context, id int64) error
}
