package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/financer-app/apiserver/types"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// PostgresStore keeps one jsonb row per document. Unlike the file backend it
// never rewrites the whole collection; Update serializes writers of the same
// key with a row lock instead of a process-wide mutex.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a store over an open connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// List returns every document in insertion order.
func (s *PostgresStore) List(ctx context.Context) ([]types.UserDocument, error) {
	const query = `SELECT doc FROM users ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	docs := []types.UserDocument{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		var doc types.UserDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: decode document: %v", ErrUnavailable, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return docs, nil
}

// GetByEmail returns the document for the exact email, or ErrNotFound.
func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (types.UserDocument, error) {
	const query = `SELECT doc FROM users WHERE email = $1`
	var raw []byte
	if err := s.db.QueryRowContext(ctx, query, email).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.UserDocument{}, ErrNotFound
		}
		return types.UserDocument{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var doc types.UserDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.UserDocument{}, fmt.Errorf("%w: decode document: %v", ErrUnavailable, err)
	}
	return doc, nil
}

// Insert adds a new document row.
func (s *PostgresStore) Insert(ctx context.Context, doc types.UserDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrUnavailable, err)
	}

	now := time.Now()
	const query = `
		INSERT INTO users (email, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := s.db.ExecContext(ctx, query, doc.Email, raw, now, now); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Update applies the mutation inside a transaction holding a row lock, so
// overlapping updates of the same document serialize instead of racing.
func (s *PostgresStore) Update(ctx context.Context, email string, apply func(types.UserDocument) (types.UserDocument, error)) (types.UserDocument, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.UserDocument{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const selectQuery = `SELECT doc FROM users WHERE email = $1 FOR UPDATE`
	var raw []byte
	if err := tx.QueryRowContext(ctx, selectQuery, email).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.UserDocument{}, ErrNotFound
		}
		return types.UserDocument{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var doc types.UserDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.UserDocument{}, fmt.Errorf("%w: decode document: %v", ErrUnavailable, err)
	}

	updated, err := apply(doc)
	if err != nil {
		return types.UserDocument{}, err
	}
	updated.Email = doc.Email

	encoded, err := json.Marshal(updated)
	if err != nil {
		return types.UserDocument{}, fmt.Errorf("%w: encode document: %v", ErrUnavailable, err)
	}

	const updateQuery = `UPDATE users SET doc = $1, updated_at = $2 WHERE email = $3`
	if _, err := tx.ExecContext(ctx, updateQuery, encoded, time.Now(), email); err != nil {
		return types.UserDocument{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := tx.Commit(); err != nil {
		return types.UserDocument{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return updated, nil
}
