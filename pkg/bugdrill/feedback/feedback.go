// Package feedback fans check outcomes out to registered handlers. The
// dashboard uses it to push events to connected clients; the CLI registers a
// console handler. Handlers must not block for long: publishing happens on
// the check commit path.
package feedback

import (
	"fmt"
	"log"
	"sync"
	"time"
)

type EventType string

const (
	CheckSucceeded   EventType = "check_succeeded"
	CheckFailed      EventType = "check_failed"
	SessionPresented EventType = "session_presented"
	SessionReset     EventType = "session_reset"
)

// Event describes one session happening.
type Event struct {
	Type      EventType
	SessionID string
	Language  string
	Message   string
	Timestamp time.Time
}

// Handler consumes events. A handler error is reported to the caller of
// Publish but does not stop delivery to the remaining handlers.
type Handler interface {
	Handle(event Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(event Event) error

func (f HandlerFunc) Handle(event Event) error { return f(event) }

// ConsoleHandler prints events to stdout with a level prefix.
type ConsoleHandler struct{}

func (h *ConsoleHandler) Handle(event Event) error {
	timestamp := event.Timestamp.Format("15:04:05")
	fmt.Printf("[%s] %s [%s]: %s\n", timestamp, event.Type, event.SessionID, event.Message)
	return nil
}

// LogHandler writes events through a *log.Logger, or the default logger when
// nil.
type LogHandler struct {
	logger *log.Logger
}

func NewLogHandler(logger *log.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

func (h *LogHandler) Handle(event Event) error {
	if h.logger == nil {
		log.Printf("%s [%s]: %s", event.Type, event.SessionID, event.Message)
	} else {
		h.logger.Printf("%s [%s]: %s", event.Type, event.SessionID, event.Message)
	}
	return nil
}

// Registry holds handlers per event type.
type Registry struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[EventType][]Handler),
	}
}

// Register appends a handler for one event type.
func (r *Registry) Register(eventType EventType, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[eventType] = append(r.handlers[eventType], handler)
}

// RegisterAll appends a handler for every known event type.
func (r *Registry) RegisterAll(handler Handler) {
	for _, t := range []EventType{CheckSucceeded, CheckFailed, SessionPresented, SessionReset} {
		r.Register(t, handler)
	}
}

// Publish delivers the event to every handler registered for its type.
// Delivery continues past failing handlers; the first error is returned.
func (r *Registry) Publish(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	r.mu.RLock()
	handlers := make([]Handler, len(r.handlers[event.Type]))
	copy(handlers, r.handlers[event.Type])
	r.mu.RUnlock()

	var firstErr error
	for _, handler := range handlers {
		if err := handler.Handle(event); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("feedback handler for %s: %w", event.Type, err)
		}
	}
	return firstErr
}
