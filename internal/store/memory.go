package store

import (
	"context"
	"sync"

	"github.com/financer-app/apiserver/types"
)

// MemoryStore is an in-memory UserStore with the same semantics as the
// file-backed one. Used by tests and the dev backend.
type MemoryStore struct {
	mu   sync.Mutex
	docs []types.UserDocument
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: []types.UserDocument{}}
}

func (s *MemoryStore) List(ctx context.Context) ([]types.UserDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.UserDocument, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (types.UserDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.docs {
		if doc.Email == email {
			return doc, nil
		}
	}
	return types.UserDocument{}, ErrNotFound
}

func (s *MemoryStore) Insert(ctx context.Context, doc types.UserDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.docs {
		if existing.Email == doc.Email {
			return ErrDuplicateEmail
		}
	}
	s.docs = append(s.docs, doc)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, email string, apply func(types.UserDocument) (types.UserDocument, error)) (types.UserDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.docs {
		if doc.Email != email {
			continue
		}
		updated, err := apply(doc)
		if err != nil {
			return types.UserDocument{}, err
		}
		updated.Email = doc.Email
		s.docs[i] = updated
		return updated, nil
	}
	return types.UserDocument{}, ErrNotFound
}
