package controllers

import (
	"context"
	"net/http"

	"github.com/electronicsstore/storefront/api/middleware"
	"github.com/electronicsstore/storefront/api/responses"
	"github.com/electronicsstore/storefront/internal/catalog"
	"github.com/electronicsstore/storefront/internal/storefront"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
	"github.com/electronicsstore/storefront/pkg/logger"
)

// ViewBuilder derives the storefront page state for a session.
type ViewBuilder interface {
	Build(ctx context.Context, sessionID string, filter catalog.FilterState) (storefront.View, error)
}

func StorefrontView(builder ViewBuilder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if builder == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Unavailable("storefront"))
			return
		}

		filter, err := parseFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := builder.Build(r.Context(), middleware.SessionIDFromContext(r.Context()), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
