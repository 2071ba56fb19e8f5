package repo

import (
	"sync"
	"sync/atomic"
)

// subscription delivers snapshots on its own goroutine. Only the newest
// pending snapshot is kept: a slow subscriber skips intermediate states but
// always ends on the current one.
type subscription struct {
	onSnapshot SnapshotFunc
	onError    ErrorFunc

	mu         sync.Mutex
	pending    []Document
	hasPending bool
	pendingErr error

	wake   chan struct{}
	done   chan struct{}
	closed atomic.Bool
	once   sync.Once
}

func newSubscription(onSnapshot SnapshotFunc, onError ErrorFunc) *subscription {
	s := &subscription{
		onSnapshot: onSnapshot,
		onError:    onError,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *subscription) offer(docs []Document) {
	if s.closed.Load() {
		return
	}
	s.mu.Lock()
	s.pending = docs
	s.hasPending = true
	s.mu.Unlock()
	s.signal()
}

func (s *subscription) fail(err error) {
	if s.closed.Load() {
		return
	}
	s.mu.Lock()
	s.pendingErr = err
	s.mu.Unlock()
	s.signal()
}

func (s *subscription) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		s.mu.Lock()
		docs, has, err := s.pending, s.hasPending, s.pendingErr
		s.pending, s.hasPending, s.pendingErr = nil, false, nil
		s.mu.Unlock()

		if err != nil && s.onError != nil && !s.closed.Load() {
			s.onError(err)
		}
		if has && !s.closed.Load() {
			s.onSnapshot(docs)
		}
	}
}

func (s *subscription) cancel() {
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.done)
	})
}
