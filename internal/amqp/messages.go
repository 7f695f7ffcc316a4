package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Actions carried by EntityEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntityEvent announces that one record changed. It carries identifiers only;
// consumers read the current state from the API.
type EntityEvent struct {
	ID         string    `json:"id"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	EntityID   int64     `json:"entityId"`
	Cascaded   []int64   `json:"cascadedIds,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEntityEvent creates an event with a fresh id and the current time.
func NewEntityEvent(entity, action string, entityID int64) *EntityEvent {
	return &EntityEvent{
		ID:         uuid.NewString(),
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}

// RoutingKey is "<prefix>.<entity>.<action>", suitable for a topic exchange.
func (e *EntityEvent) RoutingKey(prefix string) string {
	key := e.Entity + "." + e.Action
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// ToJSON converts the event to JSON bytes
func (e *EntityEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EntityEventFromJSON decodes an event
func EntityEventFromJSON(data []byte) (*EntityEvent, error) {
	var e EntityEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
