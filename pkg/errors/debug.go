package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Causes recognised in an error chain, reported as ErrorDump.Cause.
const (
	CauseTimeout    = "timeout"
	CauseCanceled   = "canceled"
	CauseRedisMiss  = "redis_miss"
	CauseRecordMiss = "record_not_found"
	CausePostgres   = "postgres"
)

// ErrorDump is the log view of an error: the typed code with its HTTP
// mapping, the unwrapped chain and the storage layer that produced it.
type ErrorDump struct {
	TopMessage string
	Code       Code
	Status     int
	Retryable  bool
	Chain      []string
	Cause      string
	Postgres   *PostgresDetail
}

// PostgresDetail carries the server-side fields of a Postgres error.
type PostgresDetail struct {
	Code       string
	Constraint string
	Table      string
	Column     string
	Detail     string
	Message    string
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	code := CodeInternal
	if te := As(err); te != nil {
		code = te.Code()
	}
	meta := MetadataFor(code)

	d := ErrorDump{
		TopMessage: err.Error(),
		Code:       code,
		Status:     meta.HTTPStatus,
		Retryable:  meta.Retryable,
		Postgres:   postgresDetail(err),
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	d.Cause = classify(err, d.Postgres)
	return d
}

// Fields flattens the dump into structured log fields.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_code":  string(d.Code),
		"error_chain": d.Chain,
		"status":      d.Status,
		"retryable":   d.Retryable,
	}
	if d.Cause != "" {
		fields["error_cause"] = d.Cause
	}
	if pg := d.Postgres; pg != nil {
		fields["pg_code"] = pg.Code
		fields["pg_message"] = pg.Message
		fields["pg_detail"] = pg.Detail
		fields["pg_table"] = pg.Table
		fields["pg_column"] = pg.Column
		fields["pg_constraint"] = pg.Constraint
	}
	return fields
}

func classify(err error, pg *PostgresDetail) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CauseTimeout
	case errors.Is(err, context.Canceled):
		return CauseCanceled
	case errors.Is(err, redis.Nil):
		return CauseRedisMiss
	case errors.Is(err, gorm.ErrRecordNotFound):
		return CauseRecordMiss
	case pg != nil:
		return CausePostgres
	}
	return ""
}

// postgresDetail reads pgx first, then lib/pq for connections opened
// through database/sql.
func postgresDetail(err error) *PostgresDetail {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return &PostgresDetail{
			Code:       pgxErr.Code,
			Constraint: pgxErr.ConstraintName,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Detail:     pgxErr.Detail,
			Message:    pgxErr.Message,
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &PostgresDetail{
			Code:       string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Detail:     pqErr.Detail,
			Message:    pqErr.Message,
		}
	}
	return nil
}
