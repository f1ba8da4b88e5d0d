package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Locker serializes turns within one session.
type Locker interface {
	WithSessionLock(ctx context.Context, sessionID uuid.UUID, fn func(ctx context.Context) error) error
}

// MemoryLocker is an in-process Locker. Unlike the Redis locker it waits for
// the running turn to finish, giving up only when ctx is done.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[uuid.UUID]*slot)}
}

func (l *MemoryLocker) WithSessionLock(ctx context.Context, sessionID uuid.UUID, fn func(ctx context.Context) error) error {
	s := l.acquireSlot(sessionID)
	defer l.releaseSlot(sessionID, s)

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		return ErrSessionBusy
	}
	defer func() { <-s.ch }()

	return fn(ctx)
}

func (l *MemoryLocker) acquireSlot(id uuid.UUID) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[id]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[id] = s
	}
	s.refs++
	return s
}

func (l *MemoryLocker) releaseSlot(id uuid.UUID, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, id)
	}
}
