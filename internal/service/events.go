package service

import (
	"sync"

	"github.com/platelistapp/platelist-server/internal/sse"
)

// EventEmitter publishes change events to a user's open sessions.
// *sse.Manager implements it.
type EventEmitter interface {
	Emit(event sse.Event)
}

// CacheInvalidator drops a user's cached recommendations after their log changes.
// *cache.Cache implements it.
type CacheInvalidator interface {
	InvalidateUser(userID string) (int, error)
}

type noopEmitter struct{}

func (noopEmitter) Emit(sse.Event) {}

// NewNoopEmitter returns an emitter that discards events.
func NewNoopEmitter() EventEmitter { return noopEmitter{} }

// userLocks serializes writes to one user's ranking. Different users never contend.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
