package controllers

import (
	"net/http"

	"github.com/electronicsstore/storefront/api/responses"
	"github.com/electronicsstore/storefront/api/validators"
	"github.com/electronicsstore/storefront/internal/catalog"
	"github.com/electronicsstore/storefront/pkg/enums"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
	"github.com/electronicsstore/storefront/pkg/logger"
)

type catalogListResponse struct {
	Query    string            `json:"query"`
	Category enums.Category    `json:"category"`
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

// parseFilter reads the q and category query parameters shared by the
// catalog and storefront endpoints.
func parseFilter(r *http.Request) (catalog.FilterState, error) {
	category, err := validators.ParseCategoryQuery(r)
	if err != nil {
		return catalog.FilterState{}, err
	}
	return catalog.FilterState{Query: validators.ParseSearchQuery(r), Category: category}, nil
}

// CatalogList returns the products visible under the requested filter.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Unavailable("catalog service"))
			return
		}

		filter, err := parseFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.Search(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, catalogListResponse{
			Query:    filter.Query,
			Category: filter.Category,
			Count:    len(products),
			Products: products,
		})
	}
}

// CatalogCategories returns the selectable categories in display order.
func CatalogCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Unavailable("catalog service"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": svc.Categories()})
	}
}

func CatalogProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Unavailable("catalog service"))
			return
		}

		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
