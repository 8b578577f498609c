package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT)`)
	require.NoError(t, err)
	return db
}

func count(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	return n
}

func TestWithTx_Commits(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO kv VALUES ('a', '1')`); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO kv VALUES ('b', '2')`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count(t, db))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	boom := errors.New("boom")

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO kv VALUES ('a', '1')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, count(t, db))
}

func TestWithTx_RollsBackOnStatementError(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO kv VALUES ('a', '1')`); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO kv VALUES ('a', 'dup')`)
		return err
	})
	require.Error(t, err)
	assert.Equal(t, 0, count(t, db))
}

func TestNullStringValue(t *testing.T) {
	assert.Equal(t, "x", NullStringValue(sql.NullString{String: "x", Valid: true}))
	assert.Empty(t, NullStringValue(sql.NullString{String: "x"}))
}
