package services

import (
	"context"
	"strings"

	"github.com/financer-app/apiserver/internal/events"
	"github.com/financer-app/apiserver/internal/merge"
	"github.com/financer-app/apiserver/internal/store"
	"github.com/financer-app/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// UserService applies generic merge-based updates. Budgets, settings, and
// bulk transaction replacement all go through this one path; callers shape
// the patch, the merge engine enforces the rules.
type UserService struct {
	store  store.UserStore
	events events.Publisher
}

// NewUserService constructs a UserService.
func NewUserService(userStore store.UserStore, publisher events.Publisher) *UserService {
	return &UserService{store: userStore, events: publisher}
}

// Update merges the patch into the stored document and persists the result.
// A password field in the patch is hashed before it reaches the merge
// engine, so the stored credential is never plaintext. store.ErrNotFound if
// the email does not resolve. The returned document has the credential
// stripped.
func (s *UserService) Update(ctx context.Context, email string, patch types.UserPatch) (types.UserDocument, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return types.UserDocument{}, err
		}
		hashed := string(hash)
		patch.Password = &hashed
	}

	doc, err := s.store.Update(ctx, NormalizeEmail(email), func(doc types.UserDocument) (types.UserDocument, error) {
		return merge.Apply(doc, patch), nil
	})
	if err != nil {
		return types.UserDocument{}, err
	}

	s.events.Publish(ctx, events.NewEvent(events.TypeUserUpdated, doc.Email))
	return doc.Sanitized(), nil
}
