// Package services implements the resource operations behind the REST API:
// field validation, defaults, referential checks and change notification.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"contracting/internal/amqp"
	"contracting/internal/core"
	applog "contracting/internal/log"
	"contracting/internal/metrics"
	"contracting/internal/store"
)

// Entity names used in logs, metrics and change events.
const (
	EntityClient    = "client"
	EntityProject   = "project"
	EntityStatement = "statement"
	EntitySupplier  = "supplier"
	EntityEmployee  = "employee"
	EntityEquipment = "equipment"
	EntityPayment   = "payment"
)

// EventPublisher delivers change events. *amqp.Client implements it.
type EventPublisher interface {
	Publish(ctx context.Context, event *amqp.EntityEvent) error
}

type Service struct {
	store     store.Store
	publisher EventPublisher
	logger    *applog.Logger
	events    *applog.StructuredLogger
	metrics   *metrics.Metrics

	// refMu serializes every write whose validity depends on another
	// collection: project writes (client reference, code uniqueness),
	// statement writes (project reference) and the project cascade.
	refMu sync.Mutex
}

// New wires a service. publisher and m may be nil.
func New(st store.Store, publisher EventPublisher, logger *applog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentResource)
	return &Service{
		store:     st,
		publisher: publisher,
		logger:    logger,
		events:    applog.NewStructuredLogger(logger),
		metrics:   m,
	}
}

// Store exposes the underlying store for read-only views.
func (s *Service) Store() store.Store {
	return s.store
}

// changed records a successful mutation. Publishing failures are logged and
// never reach the caller: the record is already stored.
func (s *Service) changed(ctx context.Context, entity, action string, id int64, cascaded []int64) {
	op := map[string]string{
		amqp.ActionCreated: applog.OpCreate,
		amqp.ActionUpdated: applog.OpUpdate,
		amqp.ActionDeleted: applog.OpDelete,
	}[action]

	s.events.LogEntityChange(ctx, entity, id, op)
	s.metrics.RecordMutation(entity, op)

	if s.publisher == nil {
		return
	}
	event := amqp.NewEntityEvent(entity, action, id)
	event.Cascaded = cascaded
	err := s.publisher.Publish(ctx, event)
	s.metrics.RecordPublish(err)
	if err != nil {
		s.events.LogError(ctx, "Failed to publish entity event", err, applog.ComponentAMQP, applog.OpPublish,
			applog.NewFields().WithEntity(entity, id))
	}
}

// storeErr maps a store failure onto the request error taxonomy.
func storeErr(err error, missing, op string) error {
	var appErr *core.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, core.ErrNotFound):
		return core.NotFound(missing)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func insert[T any](ctx context.Context, s *Service, c store.Collection[T], entity string, rec T, idOf func(T) int64) (T, error) {
	saved, err := c.Insert(ctx, rec)
	if err != nil {
		return saved, fmt.Errorf("create %s: %w", entity, err)
	}
	s.changed(ctx, entity, amqp.ActionCreated, idOf(saved), nil)
	return saved, nil
}

func update[T any](ctx context.Context, s *Service, c store.Collection[T], entity, missing string, id int64, apply func(*T) error) (T, error) {
	saved, err := c.Update(ctx, id, apply)
	if err != nil {
		return saved, storeErr(err, missing, "update "+entity)
	}
	s.changed(ctx, entity, amqp.ActionUpdated, id, nil)
	return saved, nil
}

func remove[T any](ctx context.Context, s *Service, c store.Collection[T], entity, missing string, id int64) (T, error) {
	removed, err := c.Remove(ctx, id)
	if err != nil {
		return removed, storeErr(err, missing, "delete "+entity)
	}
	s.changed(ctx, entity, amqp.ActionDeleted, id, nil)
	return removed, nil
}

// setText applies a required text field on update. A present field must be
// a non-blank string.
func setText(o core.Optional[string], dst *string) bool {
	if !o.Present {
		return true
	}
	v, ok := core.Text(o)
	if !ok {
		return false
	}
	*dst = v
	return true
}

// enumOrDefault resolves an enum on create.
func enumOrDefault[T ~string](o core.Optional[T], def T, valid func(T) bool) (T, error) {
	if !o.Present || o.Null {
		return def, nil
	}
	if o.Invalid || !valid(o.Value) {
		return def, core.Validation(core.MsgInvalidStatus)
	}
	return o.Value, nil
}

// setEnum applies an enum on update. Null and unknown values are rejected.
func setEnum[T ~string](o core.Optional[T], dst *T, valid func(T) bool) error {
	if !o.Present {
		return nil
	}
	if !o.Ok() || !valid(o.Value) {
		return core.Validation(core.MsgInvalidStatus)
	}
	*dst = o.Value
	return nil
}

// setNumber applies a numeric field only when the body carries a number.
func setNumber(o core.Optional[float64], dst *float64) {
	if o.Ok() {
		*dst = o.Value
	}
}

func optionalText(o core.Optional[string]) string {
	if o.Ok() {
		return o.Value
	}
	return ""
}
