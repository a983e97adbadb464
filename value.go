package sheen

import "fmt"

// Store owns a set of continuous values. Create one per mounted highlight
// instance; there is no package-level store.
type Store struct {
	values   []*Value
	nextSub  uint32
	disposed bool
}

// Value is a mutable scalar cell that can be read synchronously and written by
// animations or direct assignment, independent of the render cycle.
// Values are created by Store.NewValue and belong to that store.
type Value struct {
	store *Store
	id    uint32
	v     float64
	subs  []valueSubscriber
	dead  bool
}

type valueSubscriber struct {
	id uint32
	fn func(float64)
}

// Subscription allows removing a registered change callback.
type Subscription struct {
	remove func()
}

// Remove unregisters the callback. Calling Remove more than once, or on the
// zero Subscription, is a no-op.
func (s *Subscription) Remove() {
	if s == nil || s.remove == nil {
		return
	}
	fn := s.remove
	s.remove = nil
	fn()
}

// NewStore creates an empty value store.
func NewStore() *Store {
	return &Store{}
}

// NewValue creates a value holding initial.
func (s *Store) NewValue(initial float64) *Value {
	if s.disposed {
		panic("sheen: NewValue on disposed store")
	}
	v := &Value{store: s, id: uint32(len(s.values)) + 1, v: initial}
	s.values = append(s.values, v)
	return v
}

// Len returns the number of live values in the store.
func (s *Store) Len() int {
	return len(s.values)
}

// Get returns the latest value written to v.
func (s *Store) Get(v *Value) float64 {
	s.check(v, "Get")
	return v.v
}

// Set writes x to v and synchronously notifies v's subscribers in
// registration order. Writing the value v already holds notifies nobody.
func (s *Store) Set(v *Value, x float64) {
	s.check(v, "Set")
	if v.v == x {
		return
	}
	v.v = x
	// Iterate over a snapshot so callbacks may subscribe or unsubscribe.
	subs := v.subs
	for _, sub := range subs {
		sub.fn(x)
	}
}

// Subscribe registers fn to be called with the new value after every change.
func (s *Store) Subscribe(v *Value, fn func(float64)) Subscription {
	s.check(v, "Subscribe")
	if fn == nil {
		panic("sheen: Subscribe with nil callback")
	}
	s.nextSub++
	id := s.nextSub
	v.subs = append(v.subs, valueSubscriber{id: id, fn: fn})
	return Subscription{remove: func() { v.unsubscribe(id) }}
}

// Dispose destroys every value in the store. Any later use of those values
// panics.
func (s *Store) Dispose() {
	if s.disposed {
		return
	}
	for _, v := range s.values {
		v.dead = true
		v.subs = nil
	}
	s.values = nil
	s.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (s *Store) IsDisposed() bool {
	return s.disposed
}

func (s *Store) check(v *Value, op string) {
	if v == nil {
		panic(fmt.Sprintf("sheen: %s on nil value", op))
	}
	if v.store != s {
		panic(fmt.Sprintf("sheen: %s on value %d from another store", op, v.id))
	}
	if v.dead {
		panic(fmt.Sprintf("sheen: %s on value %d of a disposed store", op, v.id))
	}
}

// Get returns the current value.
func (v *Value) Get() float64 {
	if v == nil {
		panic("sheen: Get on nil value")
	}
	return v.store.Get(v)
}

// Set writes x and notifies subscribers if it changed.
func (v *Value) Set(x float64) {
	if v == nil {
		panic("sheen: Set on nil value")
	}
	v.store.Set(v, x)
}

// Subscribe registers fn to be called after every change.
func (v *Value) Subscribe(fn func(float64)) Subscription {
	if v == nil {
		panic("sheen: Subscribe on nil value")
	}
	return v.store.Subscribe(v, fn)
}

// ID returns the value's store-local identifier. IDs start at 1.
func (v *Value) ID() uint32 {
	return v.id
}

// unsubscribe rebuilds the slice rather than shifting in place so an
// in-progress Set keeps iterating its own snapshot.
func (v *Value) unsubscribe(id uint32) {
	for i := range v.subs {
		if v.subs[i].id == id {
			subs := make([]valueSubscriber, 0, len(v.subs)-1)
			subs = append(subs, v.subs[:i]...)
			v.subs = append(subs, v.subs[i+1:]...)
			return
		}
	}
}
