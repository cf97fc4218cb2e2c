package database

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore is an in-memory implementation of the Store interface.
// Documents are held as marshaled BSON so reads go through the same codec as
// the real backends. This implementation is safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	closed      bool
}

type memoryCollection struct {
	docs []encodedDoc
	keys map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

// Connect is a no-op; it reopens a closed store
func (m *MemoryStore) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = false
	return nil
}

// Close marks the store closed. Contents are kept.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Ping reports whether the store is open
func (m *MemoryStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrConnection
	}
	return nil
}

// Drop removes the named collections
func (m *MemoryStore) Drop(ctx context.Context, collections ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrConnection
	}

	for _, name := range collections {
		if err := checkCollection(name); err != nil {
			return err
		}
		delete(m.collections, name)
	}
	return nil
}

// InsertMany appends docs to collection. The batch is all-or-nothing: a
// duplicate _id anywhere in it leaves the collection untouched.
func (m *MemoryStore) InsertMany(ctx context.Context, collection string, docs []any) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	encoded := make([]encodedDoc, 0, len(docs))
	for _, doc := range docs {
		e, err := encodeDocument(doc)
		if err != nil {
			return err
		}
		encoded = append(encoded, e)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrConnection
	}

	coll, ok := m.collections[collection]
	if !ok {
		coll = &memoryCollection{keys: make(map[string]struct{})}
	}

	batchKeys := make(map[string]struct{}, len(encoded))
	for _, e := range encoded {
		if _, dup := coll.keys[e.key]; dup {
			return fmt.Errorf("%w: %s _id %s", ErrDuplicate, collection, e.key)
		}
		if _, dup := batchKeys[e.key]; dup {
			return fmt.Errorf("%w: %s _id %s", ErrDuplicate, collection, e.key)
		}
		batchKeys[e.key] = struct{}{}
	}

	for _, e := range encoded {
		coll.docs = append(coll.docs, e)
		coll.keys[e.key] = struct{}{}
	}
	m.collections[collection] = coll
	return nil
}

// Count returns the number of documents in collection
func (m *MemoryStore) Count(ctx context.Context, collection string) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, ErrConnection
	}

	coll, ok := m.collections[collection]
	if !ok {
		return 0, nil
	}
	return int64(len(coll.docs)), nil
}

// Find decodes every document of collection in insertion order
func (m *MemoryStore) Find(ctx context.Context, collection string, results any) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	m.mu.RLock()
	var raws []bson.Raw
	if coll, ok := m.collections[collection]; ok {
		raws = make([]bson.Raw, len(coll.docs))
		for i, e := range coll.docs {
			raws[i] = e.raw
		}
	}
	closed := m.closed
	m.mu.RUnlock()

	if closed {
		return ErrConnection
	}
	return decodeAll(ctx, raws, results)
}
