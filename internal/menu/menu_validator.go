package menu

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMenu = errors.New("invalid menu")

// ValidateItemID rejects ids that cannot be used in /img/<id>.jpg.
func ValidateItemID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("item id missing")
	}
	if strings.ContainsAny(id, `/\?#`) || strings.Contains(id, "..") {
		return fmt.Errorf("item id %q contains path characters", id)
	}
	return nil
}

func ValidateItems(items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidMenu)
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if err := ValidateItemID(item.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidMenu, err)
		}
		if seen[item.ID] {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidMenu, item.ID)
		}
		seen[item.ID] = true

		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %q has no name", ErrInvalidMenu, item.ID)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: item %q has negative price", ErrInvalidMenu, item.ID)
		}
	}
	return nil
}
