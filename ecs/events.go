package ecs

import (
	"iter"
	"reflect"
)

// eventQueue is the per-type FIFO shared by every Events[T] accessor of one storage.
type eventQueue[T any] struct {
	pending []T
	sent    uint64
}

// Events is a typed message channel between systems. Writers call Send; the consuming
// system calls Drain once per run and sees messages in the order they were sent.
// Events carry no acknowledgement, so consumers must tolerate duplicates.
//
// An Events field on a system is bound by the Scheduler, like Query and Singleton fields.
type Events[T any] struct {
	queue *eventQueue[T]
}

// NewEvents returns an accessor for the T queue of storage, creating the queue if needed.
func NewEvents[T any](storage *Storage) *Events[T] {
	e := &Events[T]{}
	e.Init(storage)
	return e
}

// Init binds the accessor to the storage's queue for T.
func (e *Events[T]) Init(storage *Storage) {
	t := reflect.TypeFor[T]()
	if q, ok := storage.events[t].(*eventQueue[T]); ok {
		e.queue = q
		return
	}
	e.queue = &eventQueue[T]{}
	storage.events[t] = e.queue
}

// Send appends ev to the queue.
func (e *Events[T]) Send(ev T) {
	e.queue.pending = append(e.queue.pending, ev)
	e.queue.sent++
}

// Len returns the number of undelivered events.
func (e *Events[T]) Len() int {
	return len(e.queue.pending)
}

// Sent returns how many events have ever been sent on this queue.
func (e *Events[T]) Sent() uint64 {
	return e.queue.sent
}

// Drain removes and yields pending events in delivery order. Events sent while draining
// are delivered by the same loop. Stopping early leaves the rest queued.
func (e *Events[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for len(e.queue.pending) > 0 {
			ev := e.queue.pending[0]
			var zero T
			e.queue.pending[0] = zero
			e.queue.pending = e.queue.pending[1:]
			if !yield(ev) {
				return
			}
		}
		e.queue.pending = nil
	}
}

// Clear drops every pending event.
func (e *Events[T]) Clear() {
	e.queue.pending = nil
}
