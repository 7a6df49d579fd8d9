package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/electronicsstore/storefront/pkg/enums"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
	"github.com/go-chi/chi/v5"
)

const (
	maxQueryLen = 100

	// MaxCartQuantity caps quantities accepted from clients so line
	// subtotals stay far from int64 overflow.
	MaxCartQuantity = 999
)

// ParseSearchQuery returns the search term exactly as sent, capped at
// maxQueryLen runes. Whitespace is significant to the catalog filter.
func ParseSearchQuery(r *http.Request) string {
	return TruncateRunes(r.URL.Query().Get("q"), maxQueryLen)
}

// ParseSearchForm is ParseSearchQuery for a posted form's hidden q field.
func ParseSearchForm(r *http.Request) string {
	return TruncateRunes(r.PostFormValue("q"), maxQueryLen)
}

// ParseCategoryQuery reads the category filter; a missing value selects every category.
func ParseCategoryQuery(r *http.Request) (enums.Category, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("category"))
	category, err := enums.ParseCategory(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category").
			WithDetails(map[string]any{"field": "category", "allowed": enums.Categories()})
	}
	return category, nil
}

// ParsePathID reads a positive integer chi URL parameter.
func ParsePathID(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	return parsePositiveID(raw, key)
}

// ParseFormID reads a positive integer form field.
func ParseFormID(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(r.PostFormValue(key))
	return parsePositiveID(raw, key)
}

// ParseFormQuantity reads a quantity form field. Zero and negatives are
// accepted and remove the line; values above MaxCartQuantity are rejected.
func ParseFormQuantity(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue(key))
	if raw == "" {
		return 0, pkgerrors.InvalidField(key, "form field is required", nil)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.InvalidField(key, "form field must be numeric", nil)
	}
	if value > MaxCartQuantity {
		return 0, pkgerrors.InvalidField(key, "quantity too large", map[string]any{"max": MaxCartQuantity})
	}
	return value, nil
}

func parsePositiveID(raw, key string) (int64, error) {
	if raw == "" {
		return 0, pkgerrors.InvalidField(key, "id is required", nil)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.InvalidField(key, "id must be a positive integer", nil)
	}
	return id, nil
}
