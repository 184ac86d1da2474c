package resolvers

import (
	"errors"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
)

type memoEntry[V any] struct {
	val V
	err error
}

// memo remembers lookups for one import run. Found and not-found results
// are kept; other errors are not, so a transient failure is retried on the
// next row.
type memo[K comparable, V any] struct {
	kind    string
	entries map[K]memoEntry[V]
}

func newMemo[K comparable, V any](kind string) *memo[K, V] {
	return &memo[K, V]{kind: kind, entries: make(map[K]memoEntry[V])}
}

func (m *memo[K, V]) get(key K, load func() (V, error)) (V, error) {
	if e, ok := m.entries[key]; ok {
		cacheHits.WithLabelValues(m.kind).Inc()
		return e.val, e.err
	}
	cacheMisses.WithLabelValues(m.kind).Inc()

	v, err := load()
	if err == nil || errors.Is(err, database.ErrNotFound) {
		m.entries[key] = memoEntry[V]{val: v, err: err}
	}
	return v, err
}

func (m *memo[K, V]) len() int {
	return len(m.entries)
}

func (m *memo[K, V]) clear() {
	clear(m.entries)
}
