package sqlite

import (
	"context"
	"database/sql"

	"taskr/internal/errors"
)

// execer is satisfied by both *sql.DB and *sql.Tx, so statements can run
// alone or as part of a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	return errors.NewDatabaseError(operation, err)
}

// ValidateRowsAffected reports a not-found error when a keyed statement
// matched nothing.
func ValidateRowsAffected(result sql.Result, entityType string, key string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, key)
	}
	return nil
}

// ExecuteWithRowsAffected runs a statement against one keyed row and fails
// with a not-found error if the row does not exist.
func ExecuteWithRowsAffected(ctx context.Context, db execer, query string, entityType string, key string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("execute query", err)
	}

	return ValidateRowsAffected(result, entityType, key)
}

// CountRowsAffected runs a statement and returns how many rows it touched.
func CountRowsAffected(ctx context.Context, db execer, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// QuerySingle loads the row stored under key. A missing row is a not-found
// error; anything else is a database error.
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, key string) (*T, error) {
	row := db.QueryRowContext(ctx, query, key)
	result, err := scanFunc(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(entityType, key)
	}
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return result, nil
}
