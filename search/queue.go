package search

import "container/heap"

// Key is a totally ordered priority key. Compare returns a negative number
// when k sorts before other, zero when they tie and a positive number after.
type Key[K any] interface {
	Compare(other K) int
}

// KeyedQueue is a min-priority queue: Pop returns the value with the
// smallest key. Entries with equal keys come out in no particular order.
type KeyedQueue[K Key[K], V any] struct {
	heap keyedHeap[K, V]
}

func NewKeyedQueue[K Key[K], V any]() *KeyedQueue[K, V] {
	return &KeyedQueue[K, V]{}
}

func (q *KeyedQueue[K, V]) Insert(key K, value V) {
	heap.Push(&q.heap, keyed[K, V]{key: key, value: value})
}

// Pop removes the value with the smallest key. ok is false when the queue
// is empty.
func (q *KeyedQueue[K, V]) Pop() (value V, ok bool) {
	_, value, ok = q.PopKeyed()
	return value, ok
}

// PopKeyed is Pop that also returns the key the value was inserted with.
func (q *KeyedQueue[K, V]) PopKeyed() (key K, value V, ok bool) {
	if len(q.heap) == 0 {
		return key, value, false
	}
	e := heap.Pop(&q.heap).(keyed[K, V])
	return e.key, e.value, true
}

func (q *KeyedQueue[K, V]) Len() int { return len(q.heap) }

type keyed[K Key[K], V any] struct {
	key   K
	value V
}

// keyedHeap implements heap.Interface.
type keyedHeap[K Key[K], V any] []keyed[K, V]

func (h keyedHeap[K, V]) Len() int           { return len(h) }
func (h keyedHeap[K, V]) Less(i, j int) bool { return h[i].key.Compare(h[j].key) < 0 }
func (h keyedHeap[K, V]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *keyedHeap[K, V]) Push(x any) {
	*h = append(*h, x.(keyed[K, V]))
}

func (h *keyedHeap[K, V]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = keyed[K, V]{} // avoid memory leak
	*h = old[:n-1]
	return item
}
