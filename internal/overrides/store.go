// Package overrides decides when the override blob is persisted and loads it
// back on startup.
package overrides

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/llehouerou/rebinder/internal/state"
)

const (
	DefaultKey      = "rebinds"
	DefaultDebounce = 500 * time.Millisecond
)

// BlobStore is the string-keyed persistence collaborator.
// state.Interface implements it.
type BlobStore interface {
	GetSetting(key string) (*state.Setting, error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error
}

// Target receives a loaded blob. *rebind.Engine implements it.
type Target interface {
	ApplyOverridesBlob(blob string) error
}

// Options configures a Store.
type Options struct {
	// Key defaults to DefaultKey.
	Key string
	// Debounce delays Schedule writes; zero or less writes immediately.
	Debounce time.Duration
	Logger   *slog.Logger
}

// Store persists the override blob under one key.
type Store struct {
	store    BlobStore
	key      string
	debounce time.Duration
	logger   *slog.Logger

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *string
	lastErr   error
	lastSaved time.Time
}

// New creates a store.
func New(store BlobStore, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{
		store:    store,
		key:      opts.Key,
		debounce: opts.Debounce,
		logger:   opts.Logger.With("component", "overrides", "key", opts.Key),
	}
}

// Key returns the settings key the blob is stored under.
func (s *Store) Key() string { return s.key }

// Load returns the stored blob and when it was saved. A missing blob is
// returned as "" with a zero time.
func (s *Store) Load() (string, time.Time, error) {
	setting, err := s.store.GetSetting(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("load overrides: %w", err)
	}
	if setting == nil {
		return "", time.Time{}, nil
	}
	return setting.Value, setting.UpdatedAt, nil
}

// Restore loads the stored blob into t. Nothing is applied when no blob is
// stored.
func (s *Store) Restore(t Target) error {
	blob, savedAt, err := s.Load()
	if err != nil {
		return err
	}
	if blob == "" {
		s.logger.Debug("no stored overrides")
		return nil
	}
	if err := t.ApplyOverridesBlob(blob); err != nil {
		return fmt.Errorf("apply stored overrides: %w", err)
	}
	s.saveMu.Lock()
	if s.lastSaved.IsZero() {
		s.lastSaved = savedAt
	}
	s.saveMu.Unlock()
	s.logger.Info("overrides restored", "saved_at", savedAt)
	return nil
}

// Save writes blob now, dropping any pending scheduled write.
func (s *Store) Save(blob string) error {
	s.saveMu.Lock()
	s.stopTimerLocked()
	s.pending = nil
	s.saveMu.Unlock()
	return s.write(blob)
}

// Schedule writes blob after the debounce delay. A later call replaces a
// pending blob and restarts the delay.
func (s *Store) Schedule(blob string) {
	if s.debounce <= 0 {
		_ = s.write(blob)
		return
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.pending = &blob
	s.stopTimerLocked()
	s.saveTimer = time.AfterFunc(s.debounce, func() {
		s.saveMu.Lock()
		pending := s.pending
		s.pending = nil
		s.saveMu.Unlock()

		if pending != nil {
			_ = s.write(*pending)
		}
	})
}

// Pending reports whether a scheduled write has not happened yet.
func (s *Store) Pending() bool {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.pending != nil
}

// Flush writes a pending blob immediately.
func (s *Store) Flush() error {
	s.saveMu.Lock()
	s.stopTimerLocked()
	pending := s.pending
	s.pending = nil
	s.saveMu.Unlock()

	if pending == nil {
		return nil
	}
	return s.write(*pending)
}

// Reset deletes the stored blob and drops any pending write.
func (s *Store) Reset() error {
	s.saveMu.Lock()
	s.stopTimerLocked()
	s.pending = nil
	s.saveMu.Unlock()

	if err := s.store.DeleteSetting(s.key); err != nil {
		return fmt.Errorf("reset overrides: %w", err)
	}
	s.logger.Info("stored overrides deleted")
	return nil
}

// Err returns the error of the last write, nil if it succeeded.
func (s *Store) Err() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.lastErr
}

// LastSaved returns when the blob was last written, or when the restored
// blob had been saved. It is zero until either happens.
func (s *Store) LastSaved() time.Time {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.lastSaved
}

// Close flushes a pending write.
func (s *Store) Close() error {
	return s.Flush()
}

func (s *Store) stopTimerLocked() {
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
}

func (s *Store) write(blob string) error {
	err := s.store.SetSetting(s.key, blob)
	if err != nil {
		err = fmt.Errorf("save overrides: %w", err)
		s.logger.Error("saving overrides failed", "error", err)
	} else {
		s.logger.Debug("overrides saved", "bytes", len(blob))
	}
	s.saveMu.Lock()
	s.lastErr = err
	if err == nil {
		s.lastSaved = time.Now()
	}
	s.saveMu.Unlock()
	return err
}
