package web

import (
	"net/http"

	"github.com/electronicsstore/storefront/api/middleware"
	"github.com/electronicsstore/storefront/api/validators"
	"github.com/electronicsstore/storefront/internal/cart"
	"github.com/electronicsstore/storefront/internal/catalog"
	"github.com/electronicsstore/storefront/internal/checkout"
	"github.com/electronicsstore/storefront/pkg/enums"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
	"github.com/electronicsstore/storefront/pkg/logger"
)

// Page renders the storefront for the q and category query parameters.
func Page(builder ViewBuilder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if builder == nil {
			writeHTMLError(r.Context(), logg, w, pkgerrors.Unavailable("storefront"))
			return
		}

		category, err := validators.ParseCategoryQuery(r)
		if err != nil {
			writeHTMLError(r.Context(), logg, w, err)
			return
		}
		filter := catalog.FilterState{Query: validators.ParseSearchQuery(r), Category: category}

		view, err := builder.Build(r.Context(), middleware.SessionIDFromContext(r.Context()), filter)
		if err != nil {
			writeHTMLError(r.Context(), logg, w, err)
			return
		}
		if err := renderPage(w, view); err != nil {
			writeHTMLError(r.Context(), logg, w, err)
		}
	}
}

func CartAdd(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeHTMLError(r.Context(), logg, w, pkgerrors.Unavailable("cart"))
			return
		}
		productID, err := validators.ParseFormID(r, "product_id")
		if err != nil {
			writeHTMLError(r.Context(), logg, w, err)
			return
		}
		if _, err := svc.Add(r.Context(), middleware.SessionIDFromContext(r.Context()), productID); err != nil {
			writeHTMLError(r.Context(), logg, w, err)
			return
		}
		redirectBack(w, r)
	}
}

// CartUpdate backs the − and + buttons, which post the already-adjusted
// quantity. Reaching zero drops the line.
func CartUpdate(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeHTMLError(r.Context(), logg, w, pkgerrors.Unavailable("cart"))
			return
		}
		productID, err := validators.ParseFormID(r, "product_id")
		if err != nil {
			writeHTMLError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.ParseFormQuantity(r, "quantity")
		if err != nil {
			writeHTMLError(r.Context(), logg, w, err)
			return
		}
		if _, err := svc.UpdateQuantity(r.Context(), middleware.SessionIDFromContext(r.Context()), productID, quantity); err != nil {
			writeHTMLError(r.Context(), logg, w, err)
			return
		}
		redirectBack(w, r)
	}
}

func CartRemove(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeHTMLError(r.Context(), logg, w, pkgerrors.Unavailable("cart"))
			return
		}
		productID, err := validators.ParseFormID(r, "product_id")
		if err != nil {
			writeHTMLError(r.Context(), logg, w, err)
			return
		}
		if _, err := svc.Remove(r.Context(), middleware.SessionIDFromContext(r.Context()), productID); err != nil {
			writeHTMLError(r.Context(), logg, w, err)
			return
		}
		redirectBack(w, r)
	}
}

// Checkout hands the visitor to the phone dialer. An empty cart has no
// checkout button, so it is sent back to the page instead.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeHTMLError(r.Context(), logg, w, pkgerrors.Unavailable("checkout"))
			return
		}
		intent, err := svc.Request(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if err != nil {
			writeHTMLError(r.Context(), logg, w, err)
			return
		}
		http.Redirect(w, r, intent.TelURI, http.StatusFound)
	}
}

// redirectBack completes the post/redirect/get cycle, keeping the filter the
// form was submitted from. Unknown categories fall back to all products.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	category, err := enums.ParseCategory(r.PostFormValue("category"))
	if err != nil {
		category = enums.CategoryAll
	}
	http.Redirect(w, r, filterURL(validators.ParseSearchForm(r), category), http.StatusSeeOther)
}
