// Package livesync keeps in-memory projections of a tenant's collections in
// step with the store.
//
// Every delivery from the store is the whole collection. A projection
// replaces what it holds on each delivery and never merges, so a reader
// always sees one complete snapshot.
package livesync

import (
	"sync"
)

// Projection holds the latest snapshot of one collection and hands it to any
// number of observers.
type Projection[T any] struct {
	mu        sync.RWMutex
	items     []T
	version   uint64
	ready     bool
	observers map[int]chan []T
	nextID    int
}

func NewProjection[T any]() *Projection[T] {
	return &Projection[T]{observers: map[int]chan []T{}}
}

// Replace installs a new snapshot and notifies observers. Observers that have
// not consumed the previous snapshot only get the newest one.
func (p *Projection[T]) Replace(items []T) {
	snap := make([]T, len(items))
	copy(snap, items)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = snap
	p.version++
	p.ready = true
	for _, ch := range p.observers {
		push(ch, snap)
	}
}

// Reset drops the snapshot, e.g. when the identity signs out.
func (p *Projection[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
	p.version++
	p.ready = false
	for _, ch := range p.observers {
		push(ch, []T{})
	}
}

// Snapshot returns a copy of the current items.
func (p *Projection[T]) Snapshot() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// Version increases on every Replace or Reset.
func (p *Projection[T]) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// Ready reports whether at least one snapshot arrived since the last reset.
func (p *Projection[T]) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ready
}

// Watch returns a channel carrying every new snapshot, starting with the
// current one when there is one, and a function that stops the watch.
// Snapshots shared through the channel must not be modified.
func (p *Projection[T]) Watch() (<-chan []T, func()) {
	ch := make(chan []T, 1)

	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.observers[id] = ch
	if p.ready {
		ch <- p.items
	}
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.observers, id)
			p.mu.Unlock()
		})
	}
}

// push replaces any unread snapshot in ch with snap. Callers hold p.mu, so
// there is a single writer per channel.
func push[T any](ch chan []T, snap []T) {
	select {
	case <-ch:
	default:
	}
	ch <- snap
}
