package controllers

import (
	"net/http"

	"github.com/electronicsstore/storefront/api/middleware"
	"github.com/electronicsstore/storefront/api/responses"
	"github.com/electronicsstore/storefront/internal/checkout"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
	"github.com/electronicsstore/storefront/pkg/logger"
)

// CheckoutRequest returns the phone intent for the session cart. The cart is
// left untouched; the order itself is placed over the phone.
func CheckoutRequest(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Unavailable("checkout service"))
			return
		}

		intent, err := svc.Request(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, intent)
	}
}
