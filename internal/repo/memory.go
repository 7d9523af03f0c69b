package repo

import "sync"

// memoryList is an append-only, insertion-ordered slice safe for concurrent use.
type memoryList[T any] struct {
	mu    sync.RWMutex
	items []T
}

func (l *memoryList[T]) list() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *memoryList[T]) append(item T) {
	l.mu.Lock()
	l.items = append(l.items, item)
	l.mu.Unlock()
}

func (l *memoryList[T]) count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}
