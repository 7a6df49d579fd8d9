package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/electronicsstore/storefront/api/middleware"
	"github.com/electronicsstore/storefront/api/responses"
	"github.com/electronicsstore/storefront/internal/catalog"
	"github.com/electronicsstore/storefront/internal/storefront"
	"github.com/electronicsstore/storefront/pkg/enums"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
	"github.com/electronicsstore/storefront/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("storefront.html").
		Funcs(template.FuncMap{
			"filterURL": filterURL,
			// tel: is outside html/template's safe URL schemes; numbers come
			// from validated config only.
			"tel": func(uri string) template.URL { return template.URL(uri) },
		}).
		ParseFS(templateFS, "templates/storefront.html"),
)

// ViewBuilder derives the storefront page state for a session.
type ViewBuilder interface {
	Build(ctx context.Context, sessionID string, filter catalog.FilterState) (storefront.View, error)
}

type pageData struct {
	View storefront.View
}

func renderPage(w http.ResponseWriter, view storefront.View) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{View: view}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render storefront")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}

// writeHTMLError maps a typed error to its status with a plain-text body.
func writeHTMLError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
		err = typed
	}
	responses.LogError(ctx, logg, "page", err)

	msg := responses.PublicMessage(typed)
	if reqID := middleware.RequestIDFromContext(ctx); reqID != "" {
		msg += " (request " + reqID + ")"
	}
	http.Error(w, msg, pkgerrors.MetadataFor(typed.Code()).HTTPStatus)
}

// filterURL builds the storefront link preserving the search term.
func filterURL(query string, category enums.Category) string {
	values := url.Values{}
	if query != "" {
		values.Set("q", query)
	}
	if category != "" && !category.IsAll() {
		values.Set("category", category.String())
	}
	if len(values) == 0 {
		return "/"
	}
	return "/?" + values.Encode()
}
