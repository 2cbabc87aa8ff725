package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/team-growth/internal/platform/resilience"
)

type entry struct {
	value     any
	expiresAt time.Time // zero when the store has no TTL
}

// Store is an in-process TTL cache. Concurrent misses on one key share a
// single load, and a load that overlaps an invalidation is returned to its
// callers without being cached.
type Store struct {
	ttl    time.Duration
	now    func() time.Time
	flight resilience.SingleFlight

	mu         sync.RWMutex
	entries    map[string]entry
	generation uint64
}

// NewStore returns a Store; ttl <= 0 keeps entries until invalidated.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !s.live(e) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && !s.live(current) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	s.mu.Lock()
	s.entries[key] = s.newEntry(value)
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, keys ...string) {
	s.invalidate(func(key string) bool {
		for _, k := range keys {
			if k == key {
				return true
			}
		}
		return false
	})
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}
	s.invalidate(func(key string) bool { return strings.HasPrefix(key, prefix) })
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or loads it once across
// concurrent callers. Loader errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errors.New("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.DoContext(ctx, key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		s.mu.RLock()
		gen := s.generation
		s.mu.RUnlock()

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.generation == gen {
			s.entries[key] = s.newEntry(loaded)
		}
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Load is the typed form of GetOrLoad.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	value, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T", key, value)
	}
	return typed, nil
}

func (s *Store) invalidate(match func(key string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	for key := range s.entries {
		if match(key) {
			delete(s.entries, key)
		}
	}
}

func (s *Store) newEntry(value any) entry {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e
}

func (s *Store) live(e entry) bool {
	return e.expiresAt.IsZero() || e.expiresAt.After(s.now())
}
