package backend

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"contracting/internal/amqp"
	applog "contracting/internal/log"
	"contracting/internal/store"
	"contracting/internal/store/memory"
	"contracting/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		st  store.Store
		err error
	)
	switch config.Type {
	case SQLiteBackend:
		st, err = f.createSQLiteStore(config)
	case MemoryBackend:
		st = f.createMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.Seed {
		if err := f.seed(ctx, st, config.SeedFile); err != nil {
			st.Close()
			return nil, err
		}
	}

	result := &BackendResult{Store: st}
	closers := []func() error{st.Close}

	// Keep Publisher a nil interface when the client is absent.
	if client := f.createPublisher(config); client != nil {
		result.Publisher = client
		closers = append(closers, client.Close)
	}

	result.Cleanup = func() error {
		var errs *multierror.Error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		return errs.ErrorOrNil()
	}
	return result, nil
}

func (f *DefaultFactory) createSQLiteStore(config Config) (store.Store, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite backend", "dsn", config.SQLiteDSN)
	return repo, nil
}

func (f *DefaultFactory) createMemoryStore() store.Store {
	f.logger.Info("Initialized memory backend")
	return memory.New()
}

func (f *DefaultFactory) seed(ctx context.Context, st store.Store, path string) error {
	ds, err := store.LoadDataset(path)
	if err != nil {
		return err
	}

	// A persistent store seeds only once.
	existing, err := st.Clients().List(ctx)
	if err != nil {
		return fmt.Errorf("inspect store before seeding: %w", err)
	}
	if len(existing) > 0 {
		f.logger.Info("Store already holds data, skipping seed", "clients", len(existing))
		return nil
	}

	if err := store.Seed(ctx, st, ds); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	source := path
	if source == "" {
		source = "bundled"
	}
	f.logger.Info("Seeded store",
		"source", source,
		"clients", len(ds.Clients),
		"projects", len(ds.Projects),
		"statements", len(ds.Statements))
	return nil
}

// createPublisher connects to the broker. A failed connection is logged and
// the service runs without change events.
func (f *DefaultFactory) createPublisher(config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPRoutingPrefix, f.logger)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without change events", "error", err)
		return nil
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"routing_prefix", config.AMQPRoutingPrefix)
	return client
}
