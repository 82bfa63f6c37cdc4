// Package state persists small key/value settings across sessions, such as the
// update version the user chose to dismiss.
package state

import (
	"errors"
	"fmt"
	"path/filepath"

	"autoscroll/pkg/config"
	"autoscroll/pkg/logger"
)

// Keys used by autoscroll
const (
	KeyDismissedVersion = "dismissedVersion"
)

var (
	// ErrNotFound is returned when a key has no value
	ErrNotFound = errors.New("state key not found")
	// ErrInvalidKey is returned for empty keys
	ErrInvalidKey = errors.New("state key must not be empty")
)

// Store is a persistent key/value store
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Manager reads and writes through a chain of stores. Writes go to the first
// store that accepts them; reads return the first value found.
type Manager struct {
	stores []Store
	logger logger.Logger
}

// NewManager creates a manager backed by the system keyring when available,
// with a JSON file in the data directory as fallback.
func NewManager() (*Manager, error) {
	var stores []Store

	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	} else {
		logger.GetLogger().WithError(err).Debug("Keyring unavailable, using file state only")
	}

	dataDir, err := config.DataDirectory()
	if err != nil {
		return nil, fmt.Errorf("failed to get data directory: %w", err)
	}
	stores = append(stores, NewFileStore(filepath.Join(dataDir, "state.json")))

	return NewManagerWithStores(stores...), nil
}

// NewManagerWithStores creates a manager over explicit stores
func NewManagerWithStores(stores ...Store) *Manager {
	return &Manager{stores: stores, logger: logger.GetLogger()}
}

// Get returns the first value found for key
func (m *Manager) Get(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, store := range m.stores {
		value, err := store.Get(key)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, ErrNotFound) {
			m.logger.WithError(err).WithField("key", key).Debug("State store read failed")
		}
	}
	return "", ErrNotFound
}

// Set saves the value in the first store that accepts it
func (m *Manager) Set(key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}

	var lastErr error
	for _, store := range m.stores {
		if err := store.Set(key, value); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store %s: %w", key, lastErr)
	}
	return errors.New("no available state stores")
}

// Delete removes key from every store
func (m *Manager) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	var errs []error
	for _, store := range m.stores {
		if err := store.Delete(key); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DismissedVersion returns the release version the user dismissed, if any
func (m *Manager) DismissedVersion() string {
	value, err := m.Get(KeyDismissedVersion)
	if err != nil {
		return ""
	}
	return value
}

// DismissVersion records that the user does not want to hear about version
func (m *Manager) DismissVersion(version string) error {
	return m.Set(KeyDismissedVersion, version)
}
