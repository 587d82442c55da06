// Package kv provides a generic thread-safe key-value store.
package kv

import "sync"

// Store is a thread-safe generic key-value store. A store created with a
// limit evicts its oldest entry once the limit is reached.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	data  map[K]V
	order []K
	limit int
}

// New creates an unbounded store.
func New[K comparable, V any]() *Store[K, V] {
	return NewBounded[K, V](0)
}

// NewBounded creates a store holding at most limit entries. A limit of 0
// or less means unbounded.
func NewBounded[K comparable, V any](limit int) *Store[K, V] {
	return &Store[K, V]{
		data:  make(map[K]V),
		limit: limit,
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, value)
}

// GetOrCompute returns the value for key, computing and storing it when
// absent. compute runs under the write lock, so concurrent callers for the
// same key compute once.
func (s *Store[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := s.Get(key); ok {
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.data[key]; ok {
		return v
	}
	v := compute()
	s.set(key, v)
	return v
}

func (s *Store[K, V]) set(key K, value V) {
	if _, exists := s.data[key]; !exists {
		if s.limit > 0 && len(s.order) >= s.limit {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.data, oldest)
		}
		s.order = append(s.order, key)
	}
	s.data[key] = value
}

// Clear removes all entries from the store.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V)
	s.order = nil
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Keys returns all keys in insertion order.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, len(s.order))
	copy(keys, s.order)
	return keys
}
