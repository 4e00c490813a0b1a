// Package store owns the durable mapping of email to user document.
//
// Callers speak a narrow single-document interface; whether a backend keeps
// the collection as one rewritten-wholesale blob (file) or one row per
// document (postgres) is an implementation detail. Lookup keys are expected
// to be normalized (trimmed, lowercased) by the caller; the store matches
// exactly.
package store

import (
	"context"

	"github.com/financer-app/apiserver/types"
)

// UserStore defines persistence operations for user documents.
type UserStore interface {
	// List returns every document in insertion order.
	List(ctx context.Context) ([]types.UserDocument, error)

	// GetByEmail returns the document for the exact email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (types.UserDocument, error)

	// Insert adds a new document. ErrDuplicateEmail if the email is taken.
	Insert(ctx context.Context, doc types.UserDocument) error

	// Update runs apply against the stored document and persists the
	// result. The whole read-modify-write sequence is serialized against
	// other writers of the same key, so overlapping updates cannot silently
	// overwrite one another. ErrNotFound if the email does not resolve; an
	// error from apply aborts the update unchanged.
	Update(ctx context.Context, email string, apply func(types.UserDocument) (types.UserDocument, error)) (types.UserDocument, error)
}
