package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store counts hits per key within a rolling window. Implementations own
// their expiry; callers never see stale counts. The store is injected rather
// than held in package state so server instances and tests do not share
// counters.
type Store interface {
	// Hit records one hit for key and returns the count within the current
	// window, including this hit.
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryStore is a single-process Store with lazy expiry on read plus a
// background sweep.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	done    chan struct{}
	once    sync.Once
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*entry),
		done:    make(chan struct{}),
	}
	go s.sweep(time.Minute)
	return s
}

func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (int, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &entry{resetAt: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, nil
}

func (s *MemoryStore) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-t.C:
			s.mu.Lock()
			for k, e := range s.entries {
				if now.After(e.resetAt) {
					delete(s.entries, k)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}
