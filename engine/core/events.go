package core

import "github.com/1siamBot/snake/engine/game"

// Event is a simulation event annotated with the state it happened in
type Event struct {
	Type  game.Event
	Tick  uint64
	Score int
	Level int
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[game.Event][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[game.Event][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t game.Event, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// OnAll registers one handler for several event types
func (eb *EventBus) OnAll(h EventHandler, types ...game.Event) {
	for _, t := range types {
		eb.On(t, h)
	}
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Dispatch processes all queued events in emission order
func (eb *EventBus) Dispatch() {
	for _, e := range eb.queue {
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
	eb.queue = eb.queue[:0]
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int {
	return len(eb.queue)
}
