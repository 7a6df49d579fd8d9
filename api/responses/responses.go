package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
	"github.com/electronicsstore/storefront/pkg/logger"
)

// DataEnvelope wraps every successful JSON body.
type DataEnvelope struct {
	Data any `json:"data"`
}

// ErrorBody is the public part of a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, DataEnvelope{Data: data})
}

// WriteError maps err to its HTTP status and envelope. Client errors are
// logged at warn, everything else at error with the full dump.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
		err = typed
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	body := ErrorBody{Code: string(typed.Code()), Message: PublicMessage(typed)}
	if meta.DetailsAllowed {
		body.Details = typed.Details()
	}

	LogError(ctx, logg, "request", err)
	writeJSON(w, meta.HTTPStatus, ErrorEnvelope{Error: body})
}

// PublicMessage returns the caller-facing text for e. Only client errors
// expose their own message; server errors use the generic one.
func PublicMessage(e *pkgerrors.Error) string {
	meta := pkgerrors.MetadataFor(e.Code())
	if meta.HTTPStatus < http.StatusInternalServerError && e.Message() != "" {
		return e.Message()
	}
	return meta.PublicMessage
}

// LogError records err under "<scope>.rejected" (4xx) or "<scope>.error".
func LogError(ctx context.Context, logg *logger.Logger, scope string, err error) {
	if logg == nil {
		return
	}
	dump := pkgerrors.Dump(err)
	ctx = logg.WithFields(ctx, dump.Fields())
	if dump.Status < http.StatusInternalServerError {
		logg.Warn(ctx, scope+".rejected")
		return
	}
	logg.Error(ctx, scope+".error", err)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
