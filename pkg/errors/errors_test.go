package errors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "action not allowed in current state", detailsOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing product_id")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing product_id" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "product_id"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "load cart")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsAndIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNotFound, "product not found"))
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("expected IsCode to match not found")
	}
	if IsCode(err, CodeValidation) {
		t.Fatalf("did not expect validation match")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeDependency, stdErrors.New("dial tcp: refused"), "redis unavailable")
	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %v", dump.Chain)
	}
	if dump.Status != http.StatusServiceUnavailable || !dump.Retryable {
		t.Fatalf("expected dependency metadata, got %+v", dump)
	}
	if Dump(nil).TopMessage != "" {
		t.Fatalf("expected empty dump for nil")
	}
}

func TestDumpClassifiesCause(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", Wrap(CodeDependency, context.DeadlineExceeded, "load cart"), CauseTimeout},
		{"canceled", fmt.Errorf("save: %w", context.Canceled), CauseCanceled},
		{"redis miss", Wrap(CodeNotFound, redis.Nil, "cart missing"), CauseRedisMiss},
		{"plain", stdErrors.New("boom"), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Dump(tc.err).Cause; got != tc.want {
				t.Fatalf("expected cause %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDumpFieldsIncludePostgresDetail(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_pkey", TableName: "products", Message: "duplicate key"}
	dump := Dump(Wrap(CodeInternal, pgErr, "seed catalog"))

	if dump.Cause != CausePostgres || dump.Postgres == nil {
		t.Fatalf("expected postgres detail, got %+v", dump)
	}
	fields := dump.Fields()
	if fields["pg_code"] != "23505" || fields["pg_table"] != "products" || fields["error_code"] != string(CodeInternal) {
		t.Fatalf("unexpected fields %v", fields)
	}

	plain := Dump(New(CodeValidation, "bad id")).Fields()
	if _, ok := plain["pg_code"]; ok {
		t.Fatalf("pg fields must be omitted without a postgres error: %v", plain)
	}
	if plain["status"] != http.StatusBadRequest {
		t.Fatalf("unexpected status %v", plain["status"])
	}
}

func TestUnavailableIsInternal(t *testing.T) {
	err := Unavailable("cart service")
	if err.Code() != CodeInternal || err.Message() != "cart service unavailable" {
		t.Fatalf("unexpected error %v", err)
	}
	if MetadataFor(err.Code()).HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500 mapping")
	}
}

func TestInvalidFieldMergesDetails(t *testing.T) {
	err := InvalidField("quantity", "quantity too large", map[string]any{"max": 999})
	if err.Code() != CodeValidation {
		t.Fatalf("unexpected code %s", err.Code())
	}
	details, ok := err.Details().(map[string]any)
	if !ok || details["field"] != "quantity" || details["max"] != 999 {
		t.Fatalf("unexpected details %#v", err.Details())
	}
	if d := InvalidField("product_id", "id is required", nil).Details().(map[string]any); len(d) != 1 {
		t.Fatalf("expected only the field name, got %#v", d)
	}
}
