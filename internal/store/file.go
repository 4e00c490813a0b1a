package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/financer-app/apiserver/internal/storage"
	"github.com/financer-app/apiserver/types"
)

const collectionContentType = "application/json"

// FileStore keeps the whole collection as one JSON document in a blob
// backend (local disk by default). Every mutation loads the collection,
// applies the change, and rewrites it wholesale; a single mutex serializes
// all of it, which also covers the per-key write serialization Update
// promises.
type FileStore struct {
	mu   sync.Mutex
	blob storage.ObjectStorage
	key  string
}

// NewFileStore constructs a store persisting to the given object key.
func NewFileStore(blob storage.ObjectStorage, key string) *FileStore {
	return &FileStore{blob: blob, key: key}
}

// load reads the collection. A missing object is treated as an empty store
// and initialized on the spot, so the one-time write is an observable side
// effect of the first read. Callers must hold s.mu.
func (s *FileStore) load(ctx context.Context) ([]types.UserDocument, error) {
	data, err := s.blob.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			slog.InfoContext(ctx, "initializing empty user store", "key", s.key)
			if err := s.replaceAll(ctx, []types.UserDocument{}); err != nil {
				return nil, err
			}
			return []types.UserDocument{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, s.key, err)
	}

	var docs []types.UserDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, s.key, err)
	}
	return docs, nil
}

// replaceAll rewrites the whole collection. Callers must hold s.mu.
func (s *FileStore) replaceAll(ctx context.Context, docs []types.UserDocument) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrUnavailable, s.key, err)
	}
	if err := s.blob.Put(ctx, s.key, data, collectionContentType); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, s.key, err)
	}
	return nil
}

// List returns every document in insertion order.
func (s *FileStore) List(ctx context.Context) ([]types.UserDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// GetByEmail returns the document for the exact email, or ErrNotFound.
func (s *FileStore) GetByEmail(ctx context.Context, email string) (types.UserDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return types.UserDocument{}, err
	}
	for _, doc := range docs {
		if doc.Email == email {
			return doc, nil
		}
	}
	return types.UserDocument{}, ErrNotFound
}

// Insert appends a new document to the collection.
func (s *FileStore) Insert(ctx context.Context, doc types.UserDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range docs {
		if existing.Email == doc.Email {
			return ErrDuplicateEmail
		}
	}
	return s.replaceAll(ctx, append(docs, doc))
}

// Update applies the mutation to the stored document and rewrites the
// collection, all under the store lock.
func (s *FileStore) Update(ctx context.Context, email string, apply func(types.UserDocument) (types.UserDocument, error)) (types.UserDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return types.UserDocument{}, err
	}
	for i, doc := range docs {
		if doc.Email != email {
			continue
		}
		updated, err := apply(doc)
		if err != nil {
			return types.UserDocument{}, err
		}
		// The key is immutable no matter what the mutation did.
		updated.Email = doc.Email
		docs[i] = updated
		if err := s.replaceAll(ctx, docs); err != nil {
			return types.UserDocument{}, err
		}
		return updated, nil
	}
	return types.UserDocument{}, ErrNotFound
}
