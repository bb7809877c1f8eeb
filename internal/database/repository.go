package database

import (
	"context"
	"database/sql"
)

// DataStore defines the unified interface for all data operations needed by
// the services. It is composed of the smaller per-entity interfaces.
type DataStore interface {
	CategoryRepository
	ItemRepository

	// InTx runs fn against a DataStore bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(DataStore) error) error
}

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*CategoryRepo
	*ItemRepo

	db *sql.DB
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		CategoryRepo: &CategoryRepo{db: db},
		ItemRepo:     &ItemRepo{db: db},
		db:           db,
	}
}

// InTx implements DataStore. fn must only use the store it is handed; the
// connection pool holds a single connection, so calls on the outer
// repository would block until the transaction ends.
func (r *Repository) InTx(ctx context.Context, fn func(DataStore) error) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&txRepository{
			CategoryRepo: &CategoryRepo{db: tx},
			ItemRepo:     &ItemRepo{db: tx},
		})
	})
}

// txRepository is a Repository bound to an open transaction
type txRepository struct {
	*CategoryRepo
	*ItemRepo
}

// InTx on a transaction-bound store joins the existing transaction
func (r *txRepository) InTx(_ context.Context, fn func(DataStore) error) error {
	return fn(r)
}

// Compile-time verification that both stores implement DataStore
var (
	_ DataStore = (*Repository)(nil)
	_ DataStore = (*txRepository)(nil)
)
