// Package services contains the use-case orchestration between the HTTP
// layer and the user store. Services return typed outcomes; only handlers
// map them to transport status codes.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/financer-app/apiserver/internal/events"
	"github.com/financer-app/apiserver/internal/store"
	"github.com/financer-app/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// NormalizeEmail applies the canonical key normalization: trim + lowercase.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AccountService handles registration and authentication.
type AccountService struct {
	store  store.UserStore
	events events.Publisher
}

// NewAccountService constructs an AccountService.
func NewAccountService(userStore store.UserStore, publisher events.Publisher) *AccountService {
	return &AccountService{store: userStore, events: publisher}
}

// Register creates a fresh document with all derived fields zeroed and
// persists it. The password is stored as a bcrypt hash, never verbatim.
// store.ErrDuplicateEmail if the normalized email is taken. The returned
// document has the credential stripped.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (types.UserDocument, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.UserDocument{}, err
	}

	doc := types.NewUserDocument(name, email, string(hash))
	if err := s.store.Insert(ctx, doc); err != nil {
		return types.UserDocument{}, err
	}

	s.events.Publish(ctx, events.NewEvent(events.TypeUserRegistered, email))
	return doc.Sanitized(), nil
}

// Authenticate verifies the credential against the stored bcrypt hash.
// Unknown email and wrong password both come back as ErrInvalidCredentials;
// a store failure still surfaces as itself. The returned document has the
// credential stripped.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (types.UserDocument, error) {
	doc, err := s.store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.UserDocument{}, ErrInvalidCredentials
		}
		return types.UserDocument{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doc.Password), []byte(password)); err != nil {
		return types.UserDocument{}, ErrInvalidCredentials
	}
	return doc.Sanitized(), nil
}

// GetByEmail looks up a document by normalized email. store.ErrNotFound if
// absent. The returned document has the credential stripped.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (types.UserDocument, error) {
	doc, err := s.store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return types.UserDocument{}, err
	}
	return doc.Sanitized(), nil
}

// List returns every document, credentials stripped. Debug surface.
func (s *AccountService) List(ctx context.Context) ([]types.UserDocument, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sanitized := make([]types.UserDocument, len(docs))
	for i, doc := range docs {
		sanitized[i] = doc.Sanitized()
	}
	return sanitized, nil
}
