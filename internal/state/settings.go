package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/rebinder/internal/db"
)

// historyLimit is the number of past values kept per key.
const historyLimit = 20

// Setting is a stored value.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// HistoryEntry is a value a key held before it was replaced or deleted.
// Value is empty for an entry recording that the key did not exist.
type HistoryEntry struct {
	Key     string
	Value   string
	Existed bool
	SavedAt time.Time
}

// GetSetting returns the setting stored under key, or nil if there is none.
func (m *Manager) GetSetting(key string) (*Setting, error) {
	row := m.db.QueryRow(`SELECT value, updated_at FROM settings WHERE key = ?`, key)

	s := Setting{Key: key}
	var updatedAt int64
	err := row.Scan(&s.Value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // an absent key is not an error
	}
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Unix(updatedAt, 0)
	return &s, nil
}

// SetSetting stores value under key, recording the previous value in the
// key's history.
func (m *Manager) SetSetting(key, value string) error {
	now := m.now().Unix()
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		if err := recordHistory(tx, key, now); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO settings (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`, key, value, now)
		return err
	})
}

// DeleteSetting removes key. Deleting an absent key is not an error.
func (m *Manager) DeleteSetting(key string) error {
	now := m.now().Unix()
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		if err := recordHistory(tx, key, now); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM settings WHERE key = ?`, key)
		return err
	})
}

// SettingHistory returns the previous values of key, newest first.
func (m *Manager) SettingHistory(key string) ([]HistoryEntry, error) {
	rows, err := m.db.Query(`
		SELECT value, saved_at FROM setting_history
		WHERE key = ?
		ORDER BY id DESC
	`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var value sql.NullString
		var savedAt int64
		if err := rows.Scan(&value, &savedAt); err != nil {
			return nil, err
		}
		entries = append(entries, HistoryEntry{
			Key:     key,
			Value:   dbutil.NullStringValue(value),
			Existed: value.Valid,
			SavedAt: time.Unix(savedAt, 0),
		})
	}
	return entries, rows.Err()
}

func recordHistory(tx *sql.Tx, key string, now int64) error {
	var prev sql.NullString
	err := tx.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if _, err := tx.Exec(`
		INSERT INTO setting_history (key, value, saved_at) VALUES (?, ?, ?)
	`, key, prev, now); err != nil {
		return err
	}
	_, err = tx.Exec(`
		DELETE FROM setting_history
		WHERE key = ? AND id NOT IN (
			SELECT id FROM setting_history WHERE key = ? ORDER BY id DESC LIMIT ?
		)
	`, key, key, historyLimit)
	return err
}
