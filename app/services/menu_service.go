package services

import (
	"encoding/json"
	"fmt"

	"github.com/shashiranjanraj/pizzeria/app/models"
)

// MenuService serves the fixed menu loaded at boot.
type MenuService struct {
	items  []models.MenuItem
	byCode map[int]models.MenuItem
}

// ParseMenu decodes a JSON array of menu items.
func ParseMenu(raw []byte) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("menu: decode: %w", err)
	}
	return items, nil
}

// NewMenuService rejects menus with non-positive or repeated codes, blank
// names or negative prices.
func NewMenuService(items []models.MenuItem) (*MenuService, error) {
	byCode := make(map[int]models.MenuItem, len(items))
	for _, it := range items {
		switch {
		case it.Code <= 0:
			return nil, fmt.Errorf("menu: item %q has non-positive code %d", it.Name, it.Code)
		case it.Name == "":
			return nil, fmt.Errorf("menu: item %d has no name", it.Code)
		case it.Price < 0:
			return nil, fmt.Errorf("menu: item %d has negative price", it.Code)
		}
		if _, dup := byCode[it.Code]; dup {
			return nil, fmt.Errorf("menu: duplicate code %d", it.Code)
		}
		byCode[it.Code] = it
	}
	return &MenuService{items: append([]models.MenuItem(nil), items...), byCode: byCode}, nil
}

// Items returns the menu in file order.
func (s *MenuService) Items() []models.MenuItem {
	return append([]models.MenuItem(nil), s.items...)
}

func (s *MenuService) Find(code int) (models.MenuItem, bool) {
	it, ok := s.byCode[code]
	return it, ok
}
