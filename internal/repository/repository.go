package repository

import (
	"context"
	"errors"

	"stackmap/internal/domain"
)

// ErrNotFound is returned by Get when no record exists for the key
var ErrNotFound = errors.New("record not found")

const keyPrefix = "stackmap."

// ThemeKey is the key of the theme record
const ThemeKey = keyPrefix + "theme"

// PositionsKey returns the key of the position snapshot for a layout mode
func PositionsKey(mode domain.LayoutMode) string {
	return keyPrefix + "positions." + string(mode)
}

// Store is a keyed record store holding raw JSON documents
type Store interface {
	// Get returns the stored value or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the stored value
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the record. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources
	Close() error
}
