package db

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a key has no value in the store.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore maps a string key to an arbitrary JSON value. It is the
// only persistence surface the record store builds on: every mutation of a
// user's data is a full read-modify-write of the value under one key.
type KeyValueStore interface {
	// Get unmarshals the value stored under key into dest. Returns
	// ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string, dest interface{}) error
	// Set stores value (JSON-encoded) under key, replacing any prior value.
	Set(ctx context.Context, key string, value interface{}) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
