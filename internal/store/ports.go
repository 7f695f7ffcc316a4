// Package store defines the entity store ports shared by every backend.
// Stores hold records and assign ids; they never validate.
package store

import (
	"context"

	"contracting/internal/core"
)

// Collection holds the records of one entity type.
type Collection[T any] interface {
	// List returns a snapshot of all records in insertion order.
	List(ctx context.Context) ([]T, error)
	// Find returns the record with id or core.ErrNotFound.
	Find(ctx context.Context, id int64) (T, error)
	// Insert assigns the next id to rec, stores it and returns the stored copy.
	Insert(ctx context.Context, rec T) (T, error)
	// Update runs apply on a copy of the record and stores the result
	// atomically. An error from apply aborts the update.
	Update(ctx context.Context, id int64, apply func(*T) error) (T, error)
	// Remove deletes the record with id and returns it.
	Remove(ctx context.Context, id int64) (T, error)
}

type Store interface {
	Clients() Collection[core.Client]
	Projects() Collection[core.Project]
	Statements() Collection[core.Statement]
	Suppliers() Collection[core.Supplier]
	Employees() Collection[core.Employee]
	Equipment() Collection[core.Equipment]
	Payments() Collection[core.Payment]

	// RemoveProject deletes the project and every statement referencing it
	// as one operation, returning the project and the removed statements.
	RemoveProject(ctx context.Context, id int64) (core.Project, []core.Statement, error)

	Ping(ctx context.Context) error
	Close() error
}
