// Package db holds small database/sql helpers shared by the stores.
package db

import (
	"database/sql"
	"fmt"
)

// WithTx runs fn inside a transaction, committing if fn succeeds and rolling
// back otherwise.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// NullStringValue returns the string, or "" for NULL.
func NullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}
