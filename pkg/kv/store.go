// Package kv provides a generic thread-safe keyed store.
//
// Values are constrained to comparable types so callers that hand out
// handles (pointers) can remove an entry only if it still holds the
// handle they created, without racing a concurrent overwrite.
package kv

import "sync"

// Store is a thread-safe keyed collection.
type Store[K comparable, V comparable] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates an empty store.
func New[K comparable, V comparable]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key, replacing any existing value.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Swap stores a value by key and returns the previous value, if any.
func (s *Store[K, V]) Swap(key K, value V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.data[key]
	s.data[key] = value
	return prev, ok
}

// Delete removes a key from the store.
func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// GetAndDelete removes a key and returns the value it held, if any.
func (s *Store[K, V]) GetAndDelete(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if ok {
		delete(s.data, key)
	}
	return val, ok
}

// CompareAndDelete removes the key only if it still maps to value.
// Reports whether the entry was removed.
func (s *Store[K, V]) CompareAndDelete(key K, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.data[key]
	if !ok || cur != value {
		return false
	}
	delete(s.data, key)
	return true
}

// Drain removes and returns all entries.
func (s *Store[K, V]) Drain() map[K]V {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.data
	s.data = make(map[K]V)
	return out
}

// Len returns the number of entries in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
