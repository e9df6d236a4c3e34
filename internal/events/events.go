package events

import (
	"sync"

	"huddle-auction/utils"
)

// Event names signaled by the auction core
const (
	BindingCreated = "BindingCreated"
	HuddleCreated  = "HuddleCreated"
	HuddleAccepted = "HuddleAccepted"
	BidPlaced      = "BidPlaced"
	HuddleClosed   = "HuddleClosed"
	Claimed        = "Claimed"
	Rated          = "Rated"
)

// Sink receives events signaled by the auction core. Transport beyond the
// process boundary is somebody else's problem.
type Sink interface {
	Emit(name string, payload map[string]any)
}

// LogSink writes events to the structured log
type LogSink struct{}

func (LogSink) Emit(name string, payload map[string]any) {
	utils.Info("event: "+name, payload)
}

// Event is a captured emission, kept by MemorySink for assertions
type Event struct {
	Name    string
	Payload map[string]any
}

// MemorySink records emitted events in order. Intended for tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Emit(name string, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Event{Name: name, Payload: payload})
}

// Events returns a copy of everything emitted so far
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// Names returns the names of everything emitted so far, in order
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.events))
	for _, e := range s.events {
		names = append(names, e.Name)
	}
	return names
}
