package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rooftopcms/rooftop"
)

// Compile-time interface verification.
var _ rooftop.MenuService = (*MenuService)(nil)

// MenuService implements rooftop.MenuService using SQLite.
type MenuService struct {
	db *DB
}

// NewMenuService creates a new MenuService.
func NewMenuService(db *DB) *MenuService {
	return &MenuService{db: db}
}

// CreateMenu creates a menu and its items in one transaction. Items without
// a position are placed in slice order.
func (s *MenuService) CreateMenu(ctx context.Context, menu *rooftop.Menu) error {
	if err := menu.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM menus WHERE slug = ?", menu.Slug).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return rooftop.Errorf(rooftop.ECONFLICT, "menu %q already exists", menu.Slug)
	}

	result, err := tx.ExecContext(ctx, "INSERT INTO menus (id, name, slug) VALUES (?, ?, ?)",
		nullID(menu.ID), menu.Name, menu.Slug)
	if err != nil {
		return err
	}
	if menu.ID == 0 {
		if menu.ID, err = result.LastInsertId(); err != nil {
			return err
		}
	}

	for i, item := range menu.Items {
		if item.Position == 0 {
			item.Position = i + 1
		}
		item.MenuID = menu.ID
		result, err := tx.ExecContext(ctx, `
			INSERT INTO menu_items (id, menu_id, parent_id, title, url, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, nullID(item.ID), item.MenuID, item.ParentID, item.Title, item.URL, item.Position)
		if err != nil {
			return err
		}
		if item.ID == 0 {
			if item.ID, err = result.LastInsertId(); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// FindMenuByID retrieves a menu with its items ordered by position.
func (s *MenuService) FindMenuByID(ctx context.Context, id int64) (*rooftop.Menu, error) {
	var menu rooftop.Menu
	err := s.db.QueryRowContext(ctx, "SELECT id, name, slug FROM menus WHERE id = ?", id).
		Scan(&menu.ID, &menu.Name, &menu.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, rooftop.Errorf(rooftop.ENOTFOUND, "menu not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, menu_id, parent_id, title, url, position
		FROM menu_items
		WHERE menu_id = ?
		ORDER BY position ASC, id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item rooftop.MenuItem
		if err := rows.Scan(&item.ID, &item.MenuID, &item.ParentID, &item.Title, &item.URL, &item.Position); err != nil {
			return nil, err
		}
		menu.Items = append(menu.Items, &item)
	}

	return &menu, rows.Err()
}

// FindMenus retrieves all menus without their items.
func (s *MenuService) FindMenus(ctx context.Context) ([]*rooftop.Menu, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, slug FROM menus ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []*rooftop.Menu
	for rows.Next() {
		var menu rooftop.Menu
		if err := rows.Scan(&menu.ID, &menu.Name, &menu.Slug); err != nil {
			return nil, err
		}
		menus = append(menus, &menu)
	}

	return menus, rows.Err()
}

// DeleteMenu permanently removes a menu and its items.
func (s *MenuService) DeleteMenu(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM menus WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return rooftop.Errorf(rooftop.ENOTFOUND, "menu not found")
	}

	return nil
}
