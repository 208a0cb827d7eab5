package labels

import "github.com/emirpasic/gods/maps/linkedhashmap"

// Set is an insertion-ordered map from keys to values.
//
// Iteration visits entries in the order their keys were first inserted;
// replacing the value of an existing key keeps its position.
type Set[K comparable, V any] struct {
	m *linkedhashmap.Map
}

func NewSet[K comparable, V any]() *Set[K, V] {
	return &Set[K, V]{m: linkedhashmap.New()}
}

func (s *Set[K, V]) Put(key K, value V) {
	s.m.Put(key, value)
}

func (s *Set[K, V]) Get(key K) (V, bool) {
	v, ok := s.m.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (s *Set[K, V]) Remove(key K) {
	s.m.Remove(key)
}

func (s *Set[K, V]) Len() int {
	return s.m.Size()
}

// Each calls fn for every entry in insertion order.
func (s *Set[K, V]) Each(fn func(key K, value V)) {
	it := s.m.Iterator()
	for it.Next() {
		fn(it.Key().(K), it.Value().(V))
	}
}

// Keys returns the keys in insertion order.
func (s *Set[K, V]) Keys() []K {
	keys := make([]K, 0, s.m.Size())
	for _, k := range s.m.Keys() {
		keys = append(keys, k.(K))
	}
	return keys
}

// RemoveIf deletes every entry for which drop returns true and reports
// how many were deleted.
func (s *Set[K, V]) RemoveIf(drop func(key K, value V) bool) int {
	removed := 0
	for _, key := range s.Keys() {
		value, _ := s.Get(key)
		if drop(key, value) {
			s.m.Remove(key)
			removed++
		}
	}
	return removed
}
