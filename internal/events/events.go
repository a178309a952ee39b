// Package events announces changes to entries and goals so other services
// can react to them. Delivery is best effort: a failed publish is logged and
// the originating request still succeeds.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hongminglow/budget-be/internal/logger"
)

// Type names a change.
type Type string

const (
	EntryCreated Type = "entry.created"
	EntryUpdated Type = "entry.updated"
	EntryDeleted Type = "entry.deleted"
	GoalCreated  Type = "goal.created"
	GoalUpdated  Type = "goal.updated"
	GoalDeleted  Type = "goal.deleted"
)

// Event is the message body. It carries ids only; consumers read the record
// from storage if they need it.
type Event struct {
	Type      Type      `json:"type"`
	UserID    string    `json:"userId"`
	RecordID  string    `json:"recordId"`
	Timestamp time.Time `json:"timestamp"`
}

// New stamps an event with the current time.
func New(t Type, userID, recordID string) Event {
	return Event{Type: t, UserID: userID, RecordID: recordID, Timestamp: time.Now().UTC()}
}

// ToJSON encodes the event.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher sends events somewhere.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Notify publishes ev and logs a failure instead of returning it.
func Notify(ctx context.Context, p Publisher, ev Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		logger.From(ctx).WarnContext(ctx, "publish change event failed",
			"event", ev.Type,
			"record_id", ev.RecordID,
			logger.FieldError, err)
	}
}

// Noop discards events. It is used when no broker is configured.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(context.Context, Event) error { return nil }

// Memory keeps published events in order.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements Publisher.
func (m *Memory) Publish(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

// Events returns a copy of what has been published so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the published event types in order.
func (m *Memory) Types() []Type {
	evs := m.Events()
	out := make([]Type, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}
