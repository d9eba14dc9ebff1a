package events

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EventType represents different types of events
type EventType string

const (
	EventItemAdded           EventType = "item.added"
	EventItemQuantityChanged EventType = "item.quantity_changed"
	EventItemRestockNeeded   EventType = "item.restock_needed"
)

// Event represents an inventory change
type Event struct {
	Type         EventType `json:"type"`
	ItemName     string    `json:"item_name"`
	Quantity     int       `json:"quantity"`
	ReorderLevel int       `json:"reorder_level"`
	Delta        int       `json:"delta,omitempty"`
	Timestamp    int64     `json:"timestamp"`
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event) error

// PubSub provides in-memory publish/subscribe. Handlers run synchronously on
// the publishing goroutine, in the order they subscribed.
type PubSub struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	logger   *logrus.Logger
}

// NewPubSub creates a new PubSub instance
func NewPubSub(logger *logrus.Logger) *PubSub {
	if logger == nil {
		logger = logrus.New()
	}

	return &PubSub{
		handlers: make(map[EventType][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event type
func (ps *PubSub) Subscribe(eventType EventType, handler Handler) {
	if handler == nil {
		ps.logger.WithField("event_type", eventType).Warn("attempted to subscribe nil handler")
		return
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.handlers[eventType] = append(ps.handlers[eventType], handler)

	ps.logger.WithFields(logrus.Fields{
		"event_type":    eventType,
		"handler_count": len(ps.handlers[eventType]),
	}).Debug("handler subscribed to event")
}

// Publish delivers an event to every registered handler. Handler errors are
// logged and do not stop later handlers.
func (ps *PubSub) Publish(ctx context.Context, event Event) {
	if event.Type == "" {
		ps.logger.Warn("attempted to publish event with empty type")
		return
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	ps.mu.RLock()
	handlers := append([]Handler(nil), ps.handlers[event.Type]...)
	ps.mu.RUnlock()

	if len(handlers) == 0 {
		ps.logger.WithField("event_type", event.Type).Debug("no handlers for event type")
		return
	}

	ps.logger.WithFields(logrus.Fields{
		"event_type":    event.Type,
		"handler_count": len(handlers),
		"item":          event.ItemName,
	}).Debug("publishing event")

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			ps.logger.WithFields(logrus.Fields{
				"event_type": event.Type,
				"item":       event.ItemName,
				"error":      err.Error(),
			}).Error("handler failed to process event")
		}
	}
}

// GetHandlerCount returns the number of handlers for an event type
func (ps *PubSub) GetHandlerCount(eventType EventType) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return len(ps.handlers[eventType])
}

// Clear removes all handlers for an event type, or all handlers if eventType is empty
func (ps *PubSub) Clear(eventType EventType) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if eventType == "" {
		ps.handlers = make(map[EventType][]Handler)
		ps.logger.Debug("cleared all event handlers")
	} else {
		delete(ps.handlers, eventType)
		ps.logger.WithField("event_type", eventType).Debug("cleared handlers for event type")
	}
}
