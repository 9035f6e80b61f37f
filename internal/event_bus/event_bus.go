package event_bus

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType names a domain event, e.g. "budget.created".
type EventType string

// Event carries a payload of any type together with the context of the request that produced it.
type Event struct {
	ctx        context.Context
	Type       EventType
	OccurredAt time.Time
	Data       any
}

func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		ctx:        ctx,
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Context returns the publishing context, which carries the current user.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is the typed view of an Event handed to SubscribeTyped handlers.
type EventT[T any] struct {
	Event
	Data T
}

type subscription struct {
	id      uint64
	handler func(Event) error
}

// EventBus dispatches events synchronously, in subscription order, on the publishing goroutine.
type EventBus struct {
	mu     sync.RWMutex
	subs   map[EventType][]subscription
	nextId uint64
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[EventType][]subscription)}
}

// Subscribe registers h for eventType and returns a function removing it again.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	eb.nextId++
	id := eb.nextId
	eb.subs[eventType] = append(eb.subs[eventType], subscription{id: id, handler: h})
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		subs := eb.subs[eventType]
		i := sort.Search(len(subs), func(i int) bool { return subs[i].id >= id })
		if i < len(subs) && subs[i].id == id {
			eb.subs[eventType] = append(subs[:i:i], subs[i+1:]...)
		}
		if len(eb.subs[eventType]) == 0 {
			delete(eb.subs, eventType)
		}
	}
}

// SubscribeTyped registers a handler for payloads of type T. Events of eventType
// carrying another payload type are skipped.
//
// Example:
//
//	event_bus.SubscribeTyped(bus, event_bus.BudgetCreatedType,
//	    func(e event_bus.EventT[event_bus.BudgetCreated]) error {
//	        log.Infof("budget %s created for %d/%d", e.Data.BudgetId, e.Data.Month, e.Data.Year)
//	        return nil
//	    })
func SubscribeTyped[T any](eb *EventBus, eventType EventType, h func(EventT[T]) error) (unsubscribe func()) {
	return eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("skipping %s event with payload %T, expected %T", eventType, e.Data, *new(T))
			return nil
		}
		return h(EventT[T]{Event: e, Data: payload})
	})
}

// Publish runs every handler of e.Type. Handler errors and panics are collected
// and returned joined, the remaining handlers still run. A cancelled context
// stops the dispatch.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s not published: %w", e.Type, err)
	}

	eb.mu.RLock()
	subs := append([]subscription(nil), eb.subs[e.Type]...)
	eb.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("event %s interrupted: %w", e.Type, err))
			break
		}
		if err := invoke(sub, e); err != nil {
			log.Errorf("handler %d failed for event %s: %v", sub.id, e.Type, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func invoke(sub subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %d panicked for event %s: %v", sub.id, e.Type, r)
		}
	}()
	return sub.handler(e)
}
