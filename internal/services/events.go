package services

import (
	"context"
	"time"

	"github.com/custodia/custodia-api/internal/logger"
	"go.uber.org/zap"
)

// Event is a record of a completed state transition. One event is published
// per successful operation, after the operation's state is committed.
type Event struct {
	Type      string            `json:"type"`
	Fields    map[string]string `json:"fields"`
	Timestamp time.Time         `json:"timestamp"`
}

// EventPublisher delivers operation records to whatever sink is configured.
// Publish failures must never unwind an already-committed funds operation;
// callers log and continue.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NewEvent creates an event of the given type with the supplied fields.
func NewEvent(eventType string, fields map[string]string) Event {
	return Event{
		Type:      eventType,
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

// LogPublisher writes events to the structured log. It is always part of the
// publisher chain so every state transition leaves an audit line.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a log-backed event publisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{logger: logger.Log}
}

// Publish logs the event with its fields.
func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	fields := make([]zap.Field, 0, len(event.Fields)+1)
	fields = append(fields, zap.String("event_type", event.Type))
	for key, value := range event.Fields {
		fields = append(fields, zap.String(key, value))
	}
	p.logger.Info("Event published", fields...)
	return nil
}

// MultiPublisher fans an event out to several publishers. The first error is
// returned after all publishers have been attempted.
type MultiPublisher struct {
	publishers []EventPublisher
}

// NewMultiPublisher creates a fan-out publisher.
func NewMultiPublisher(publishers ...EventPublisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

// Publish delivers the event to every configured publisher.
func (p *MultiPublisher) Publish(ctx context.Context, event Event) error {
	var firstErr error
	for _, publisher := range p.publishers {
		if err := publisher.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
