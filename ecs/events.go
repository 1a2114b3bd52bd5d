package ecs

// EventQueue is a simple FIFO queue.
type EventQueue[T any] struct {
	items []T
}

// Push adds an event.
func (q *EventQueue[T]) Push(evt T) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events in push order and clears the queue.
func (q *EventQueue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// DelegateID identifies a subscription so it can be removed later.
type DelegateID int

type subscription[T any] struct {
	id DelegateID
	fn func(T)
}

// Delegate is a multicast callback list invoked in subscription order.
type Delegate[T any] struct {
	nextID DelegateID
	subs   []subscription[T]
}

func (d *Delegate[T]) Subscribe(fn func(T)) DelegateID {
	if d == nil || fn == nil {
		return 0
	}
	d.nextID++
	d.subs = append(d.subs, subscription[T]{id: d.nextID, fn: fn})
	return d.nextID
}

func (d *Delegate[T]) Unsubscribe(id DelegateID) bool {
	if d == nil {
		return false
	}
	for i, s := range d.subs {
		if s.id == id {
			d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Invoke calls every subscriber. Subscriptions changed by a callback take
// effect on the next Invoke.
func (d *Delegate[T]) Invoke(arg T) {
	if d == nil || len(d.subs) == 0 {
		return
	}
	subs := d.subs
	for _, s := range subs {
		s.fn(arg)
	}
}

func (d *Delegate[T]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.subs)
}

func (d *Delegate[T]) Clear() {
	if d == nil {
		return
	}
	d.subs = nil
}
