package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Memory is an in-process cache for one interactive session. It is not
// persisted across runs. The mutex keeps it safe if a future version adds
// concurrent prefetching; the interactive flow itself is sequential.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	nowFn   func() time.Time
}

var _ Cache = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		entries: map[string]entry{},
		nowFn:   time.Now,
	}
}

func (x *Memory) Get(signature string) (any, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	e, ok := x.entries[signature]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && x.nowFn().After(e.expiresAt) {
		delete(x.entries, signature)
		return nil, false
	}
	return e.value, true
}

func (x *Memory) Put(signature string, value any, ttl time.Duration) {
	x.mu.Lock()
	defer x.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = x.nowFn().Add(ttl)
	}
	x.entries[signature] = e
}

func (x *Memory) InvalidateAll() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries = map[string]entry{}
}
