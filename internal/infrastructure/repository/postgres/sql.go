package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pqCode(err) == pgForeignKeyViolation
}

// Transaction poolers in statement mode can drop the unnamed prepared
// statement between Parse and Bind; both errors are safe to retry once.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	if pqCode(err) == "26000" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unnamed prepared statement does not exist") || strings.Contains(msg, "(26000)")
}

func isRetryableStatementErr(err error) bool {
	return isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err)
}

// getOne runs a single-row read, retrying once on pooler statement errors.
func getOne(ctx context.Context, q sqlx.QueryerContext, dest any, query string, args ...any) (bool, error) {
	err := sqlx.GetContext(ctx, q, dest, query, args...)
	if isRetryableStatementErr(err) {
		err = sqlx.GetContext(ctx, q, dest, query, args...)
	}
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func selectAll(ctx context.Context, q sqlx.QueryerContext, dest any, query string, args ...any) error {
	err := sqlx.SelectContext(ctx, q, dest, query, args...)
	if isRetryableStatementErr(err) {
		err = sqlx.SelectContext(ctx, q, dest, query, args...)
	}
	return err
}

// withTx runs fn inside a transaction; fn errors roll back.
func withTx(ctx context.Context, db *sqlx.DB, name string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx %s: %w", name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s tx: %w", name, err)
	}
	return nil
}

func execAffected(ctx context.Context, e sqlx.ExecerContext, query string, args ...any) (int64, error) {
	result, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
