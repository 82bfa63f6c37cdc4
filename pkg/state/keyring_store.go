package state

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "autoscroll"

// KeyringStore keeps state in the system keychain
type KeyringStore struct {
	service string
}

// NewKeyringStore creates a keyring store after checking the keyring works
func NewKeyringStore() (*KeyringStore, error) {
	testKey := "test_availability"
	if err := keyring.Set(keyringService, testKey, "test"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, testKey)

	return &KeyringStore{service: keyringService}, nil
}

// Get reads a value from the keychain
func (k *KeyringStore) Get(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	value, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read from keyring: %w", err)
	}
	return value, nil
}

// Set writes a value to the keychain
func (k *KeyringStore) Set(key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}
	return nil
}

// Delete removes a value from the keychain
func (k *KeyringStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := keyring.Delete(k.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}
