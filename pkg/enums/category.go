package enums

import (
	"fmt"
	"strings"
)

// Category is the fixed set of storefront product categories.
type Category string

const (
	// CategoryAll is the sentinel that matches every product.
	CategoryAll         Category = "Все товары"
	CategorySmartphones Category = "Смартфоны"
	CategoryLaptops     Category = "Ноутбуки"
	CategoryHeadphones  Category = "Наушники"
	CategoryTablets     Category = "Планшеты"
	CategorySmartwatch  Category = "Умные часы"
)

// categoryAllAlias lets API clients select the sentinel without Cyrillic input.
const categoryAllAlias = "all"

var validCategories = []Category{
	CategoryAll,
	CategorySmartphones,
	CategoryLaptops,
	CategoryHeadphones,
	CategoryTablets,
	CategorySmartwatch,
}

// Categories returns the enumeration in display order, sentinel first.
func Categories() []Category {
	out := make([]Category, len(validCategories))
	copy(out, validCategories)
	return out
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsAll reports whether c is the match-everything sentinel.
func (c Category) IsAll() bool {
	return c == CategoryAll
}

// ParseCategory converts raw input into a Category. Empty input and the
// "all" alias resolve to CategoryAll; everything else must match exactly.
func ParseCategory(value string) (Category, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, categoryAllAlias) {
		return CategoryAll, nil
	}
	for _, candidate := range validCategories {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
