// Package memory is the default entity store. State lives in process memory
// and is lost on restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"contracting/internal/core"
	"contracting/internal/store"
)

type collection[T any] struct {
	mu    sync.RWMutex
	next  int64
	items []T
	idOf  func(*T) *int64
}

func newCollection[T any](idOf func(*T) *int64) *collection[T] {
	return &collection[T]{next: 1, idOf: idOf}
}

func (c *collection[T]) List(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items), nil
}

func (c *collection[T]) Find(_ context.Context, id int64) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], nil
	}
	var zero T
	return zero, core.ErrNotFound
}

func (c *collection[T]) Insert(_ context.Context, rec T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*c.idOf(&rec) = c.next
	c.next++
	c.items = append(c.items, rec)
	return rec, nil
}

func (c *collection[T]) Update(_ context.Context, id int64, apply func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, core.ErrNotFound
	}
	rec := c.items[i]
	if err := apply(&rec); err != nil {
		return zero, err
	}
	*c.idOf(&rec) = id
	c.items[i] = rec
	return rec, nil
}

func (c *collection[T]) Remove(_ context.Context, id int64) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(id)
}

func (c *collection[T]) removeLocked(id int64) (T, error) {
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, core.ErrNotFound
	}
	rec := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	return rec, nil
}

func (c *collection[T]) indexOf(id int64) int {
	return slices.IndexFunc(c.items, func(rec T) bool { return *c.idOf(&rec) == id })
}

// Store keeps one independently locked collection per entity type.
type Store struct {
	clients    *collection[core.Client]
	projects   *collection[core.Project]
	statements *collection[core.Statement]
	suppliers  *collection[core.Supplier]
	employees  *collection[core.Employee]
	equipment  *collection[core.Equipment]
	payments   *collection[core.Payment]
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		clients:    newCollection(func(c *core.Client) *int64 { return &c.ID }),
		projects:   newCollection(func(p *core.Project) *int64 { return &p.ID }),
		statements: newCollection(func(s *core.Statement) *int64 { return &s.ID }),
		suppliers:  newCollection(func(s *core.Supplier) *int64 { return &s.ID }),
		employees:  newCollection(func(e *core.Employee) *int64 { return &e.ID }),
		equipment:  newCollection(func(e *core.Equipment) *int64 { return &e.ID }),
		payments:   newCollection(func(p *core.Payment) *int64 { return &p.ID }),
	}
}

// NewSeeded returns a store preloaded with ds.
func NewSeeded(ctx context.Context, ds store.Dataset) (*Store, error) {
	s := New()
	if err := store.Seed(ctx, s, ds); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Clients() store.Collection[core.Client]       { return s.clients }
func (s *Store) Projects() store.Collection[core.Project]     { return s.projects }
func (s *Store) Statements() store.Collection[core.Statement] { return s.statements }
func (s *Store) Suppliers() store.Collection[core.Supplier]   { return s.suppliers }
func (s *Store) Employees() store.Collection[core.Employee]   { return s.employees }
func (s *Store) Equipment() store.Collection[core.Equipment]  { return s.equipment }
func (s *Store) Payments() store.Collection[core.Payment]     { return s.payments }

// RemoveProject locks projects before statements; no other path takes both.
func (s *Store) RemoveProject(_ context.Context, id int64) (core.Project, []core.Statement, error) {
	s.projects.mu.Lock()
	defer s.projects.mu.Unlock()
	if s.projects.indexOf(id) < 0 {
		return core.Project{}, nil, core.ErrNotFound
	}

	s.statements.mu.Lock()
	var removed []core.Statement
	kept := s.statements.items[:0:0]
	for _, st := range s.statements.items {
		if st.ProjectID == id {
			removed = append(removed, st)
			continue
		}
		kept = append(kept, st)
	}
	s.statements.items = kept
	s.statements.mu.Unlock()

	p, err := s.projects.removeLocked(id)
	return p, removed, err
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
