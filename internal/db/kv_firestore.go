package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const kvCollection = "kv_store"

// kvDocument is the shape of every document in the kv_store collection:
// the document ID is the key and the value is a JSON blob.
type kvDocument struct {
	Value string `firestore:"value"`
}

// firestoreKeyValueStore implements KeyValueStore on a single Firestore
// collection.
type firestoreKeyValueStore struct {
	client *firestore.Client
}

// NewFirestoreKeyValueStore creates a KeyValueStore backed by Firestore.
func NewFirestoreKeyValueStore(client *firestore.Client) KeyValueStore {
	if client == nil {
		log.Fatal("Firestore client is not initialized for KeyValueStore.")
	}
	return &firestoreKeyValueStore{client: client}
}

func (s *firestoreKeyValueStore) Get(ctx context.Context, key string, dest interface{}) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty for Get operation")
	}
	snap, err := s.client.Collection(kvCollection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("key '%s': %w", key, ErrKeyNotFound)
		}
		return fmt.Errorf("failed to get key '%s': %w", key, err)
	}

	var doc kvDocument
	if err := snap.DataTo(&doc); err != nil {
		return fmt.Errorf("failed to decode document for key '%s': %w", key, err)
	}
	if err := json.Unmarshal([]byte(doc.Value), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value for key '%s': %w", key, err)
	}
	return nil
}

func (s *firestoreKeyValueStore) Set(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty for Set operation")
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key '%s': %w", key, err)
	}
	_, err = s.client.Collection(kvCollection).Doc(key).Set(ctx, kvDocument{Value: string(encoded)})
	if err != nil {
		return fmt.Errorf("failed to set key '%s': %w", key, err)
	}
	return nil
}

func (s *firestoreKeyValueStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty for Delete operation")
	}
	// Firestore deletes are idempotent; a missing document is not an error.
	if _, err := s.client.Collection(kvCollection).Doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return nil
}
