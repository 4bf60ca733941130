// Package search implements a lazy best-first tree search.
//
// The engine knows nothing about the domain. A Strategy ranks values and
// expands them into successors; Search hands values back one at a time in
// rank order and only expands a value when it is popped.
package search

// Strategy supplies the domain knowledge for a Search.
//
// Rank maps a value to its priority; smaller keys are explored sooner.
// Expand returns the successors of a value, possibly none. Search never
// deduplicates, so Expand must avoid cycles if the domain has them.
//
// Values come out of Search in non-decreasing rank order only when every
// successor ranks at or above its parent.
type Strategy[T any, K Key[K]] interface {
	Rank(value T) K
	Expand(value T) []T
}

// Search is a pull-based generator over a search tree.
//
// Callers stop early simply by not calling Next again; the unexplored
// frontier is dropped with the Search.
type Search[T any, K Key[K]] struct {
	strategy Strategy[T, K]
	queue    *KeyedQueue[K, T]
	expanded int
}

// New seeds a search with a single value.
func New[T any, K Key[K]](seed T, strategy Strategy[T, K]) *Search[T, K] {
	s := &Search[T, K]{
		strategy: strategy,
		queue:    NewKeyedQueue[K, T](),
	}
	s.queue.Insert(strategy.Rank(seed), seed)
	return s
}

// Next pops the most promising value, queues its successors and returns the
// value with its rank. ok is false once the frontier is empty.
func (s *Search[T, K]) Next() (value T, rank K, ok bool) {
	rank, value, ok = s.queue.PopKeyed()
	if !ok {
		return value, rank, false
	}
	for _, child := range s.strategy.Expand(value) {
		s.queue.Insert(s.strategy.Rank(child), child)
	}
	s.expanded++
	return value, rank, true
}

// Expanded is the number of values Next has produced.
func (s *Search[T, K]) Expanded() int { return s.expanded }

// Frontier is the number of values waiting in the queue.
func (s *Search[T, K]) Frontier() int { return s.queue.Len() }
