package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vsinha/plantrecon/pkg/errs"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
)

// InMemoryEventStore keeps events for the life of the process. Handlers run
// synchronously on the publishing goroutine after the store lock is released.
type InMemoryEventStore struct {
	mu          sync.RWMutex
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	allEvents   []Event
}

var _ EventStore = (*InMemoryEventStore)(nil)

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
	}
}

// Publish appends event to its stream and notifies subscribers. Handler
// failures are logged and never fail the publish.
func (s *InMemoryEventStore) Publish(ctx context.Context, event Event) error {
	streamID := event.StreamID()

	s.mu.Lock()
	versioned := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], versioned)
	s.allEvents = append(s.allEvents, versioned)
	handlers := append([]EventHandler(nil), s.subscribers[versioned.EventType]...)
	s.mu.Unlock()

	for _, h := range handlers {
		if !h.CanHandle(versioned.EventType) {
			continue
		}
		if err := h.Handle(ctx, versioned); err != nil {
			logging.Error(ctx, "event handler failed",
				slog.String("event", versioned.EventType),
				slog.Any("err", errs.Loggable(err)),
			)
		}
	}
	return nil
}

func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.streams[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(events) {
		return []Event{}, nil
	}
	return append([]Event(nil), events[fromVersion-1:]...), nil
}

func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}
	return append([]Event(nil), s.allEvents[fromPosition:]...), nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}

func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for eventType, handlers := range s.subscribers {
		kept := handlers[:0]
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.subscribers[eventType] = kept
	}
	return nil
}
