package catalog

import (
	"strings"

	"github.com/electronicsstore/storefront/pkg/enums"
)

// FilterState is the transient search input of a single render.
type FilterState struct {
	Query    string
	Category enums.Category
}

// Filter returns the products whose name contains query (case-insensitive)
// and whose category matches, keeping catalog order. The result is never nil.
func Filter(products []Product, query string, category enums.Category) []Product {
	needle := strings.ToLower(query)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if category != enums.CategoryAll && category != p.Category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Apply runs Filter with the receiver's parameters.
func (f FilterState) Apply(products []Product) []Product {
	return Filter(products, f.Query, f.Category)
}
