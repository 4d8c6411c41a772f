package repository

import (
	"sort"
	"sync"

	"github.com/marianorefrig/mariano_api/internal/store"
)

// Locker serializes writers per collection. Multi-collection sections
// acquire their locks in a fixed order so two transactions can never wait
// on each other.
type Locker struct {
	mu map[store.Collection]*sync.Mutex
}

// NewLocker returns a Locker with one mutex per known collection.
func NewLocker() *Locker {
	l := &Locker{mu: make(map[store.Collection]*sync.Mutex, len(store.Collections))}
	for _, c := range store.Collections {
		l.mu[c] = &sync.Mutex{}
	}
	return l
}

// Lock acquires the locks for cs and returns the matching unlock function.
func (l *Locker) Lock(cs ...store.Collection) func() {
	ordered := make([]store.Collection, 0, len(cs))
	seen := make(map[store.Collection]bool, len(cs))
	for _, c := range cs {
		if seen[c] {
			continue
		}
		if _, ok := l.mu[c]; !ok {
			panic("repository: lock on unknown collection " + string(c))
		}
		seen[c] = true
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	for _, c := range ordered {
		l.mu[c].Lock()
	}
	return func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			l.mu[ordered[i]].Unlock()
		}
	}
}
