// Package backend builds the record store and the optional change-event
// publisher from configuration.
package backend

import (
	"context"

	"contracting/internal/services"
	"contracting/internal/store"
)

// CleanupFunc releases the resources a backend holds
type CleanupFunc func() error

// BackendResult holds the built store, the publisher (nil when change
// events are disabled) and the cleanup that closes both.
type BackendResult struct {
	Store     store.Store
	Publisher services.EventPublisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDSN string

	// Initial data; an empty SeedFile means the bundled demo records
	Seed     bool
	SeedFile string

	// Change events, disabled when AMQPURL is empty
	AMQPURL           string
	AMQPExchange      string
	AMQPRoutingPrefix string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
