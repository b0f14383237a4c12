// Package keyring keeps daybook secrets in the OS credential store.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/daybook/internal/constants"
)

var (
	ErrNotFound           = errors.New("secret not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// ConnectionStringKey names the postgres connection string entry.
const ConnectionStringKey = constants.DefaultKeyringUser

const probeKey = "availability-probe"

// Get reads the secret stored under key for the daybook service.
func Get(key string) (string, error) {
	value, err := keyring.Get(constants.AppName, key)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func Set(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("keyring key cannot be empty")
	}
	if value == "" {
		return fmt.Errorf("value for %q cannot be empty", key)
	}
	if err := keyring.Set(constants.AppName, key, value); err != nil {
		return fmt.Errorf("failed to store %q in keyring: %w", key, err)
	}
	return nil
}

func Delete(key string) error {
	err := keyring.Delete(constants.AppName, key)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("failed to delete %q from keyring: %w", key, err)
	}
	return nil
}

func GetConnectionString() (string, error) { return Get(ConnectionStringKey) }

func SetConnectionString(connStr string) error { return Set(ConnectionStringKey, connStr) }

func DeleteConnectionString() error { return Delete(ConnectionStringKey) }

// IsAvailable probes the keyring with a read; a miss still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, probeKey)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
