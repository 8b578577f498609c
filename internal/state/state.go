package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "rebinder"
	dbFileName = "rebinder.db"
)

// Manager is a string-keyed settings store backed by SQLite.
type Manager struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the database in the user's data directory.
func Open() (*Manager, error) {
	dbPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at path, creating its directory. ":memory:"
// opens a private in-memory database.
func OpenPath(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection: writes come from debounce timers as well as callers,
	// and ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, now: time.Now}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// DefaultPath returns the database location under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
