// Package topk implements bounded best-of-K selection over scored entities
// and the fixed-width partial results that make block-wise recommendation
// a streaming, constant-memory-per-row reduction.
package topk

import (
	"container/heap"

	"github.com/hupe1980/recgo/model"
)

// Compile time check to ensure minHeap satisfies the heap interface.
var _ heap.Interface = (*minHeap)(nil)

type entry struct {
	id    model.ID
	score float64
}

// minHeap is a plain min-heap on score. The capacity bound lives in Selector.
type minHeap []entry

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i].score < h[j].score }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) {
	*h = append(*h, x.(entry))
}

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Selector retains the K largest-scoring entities seen so far. When a new
// element would exceed the capacity, the current minimum is evicted. On
// equal scores the incumbent wins, so the first inserted element of a tie
// keeps its slot.
type Selector struct {
	h   minHeap
	cap int
}

// NewSelector creates a bounded selector with the given capacity.
// Capacity must be positive; the caller validates k before any work starts.
func NewSelector(k int) *Selector {
	return &Selector{
		h:   make(minHeap, 0, k),
		cap: k,
	}
}

// Insert offers one (id, score) pair to the selector.
func (s *Selector) Insert(id model.ID, score float64) {
	if len(s.h) < s.cap {
		heap.Push(&s.h, entry{id: id, score: score})
		return
	}
	if score > s.h[0].score {
		s.h[0] = entry{id: id, score: score}
		heap.Fix(&s.h, 0)
	}
}

// Len returns the number of retained elements.
func (s *Selector) Len() int { return len(s.h) }

// PollMin removes and returns the current minimum.
// It must not be called on an empty selector.
func (s *Selector) PollMin() (model.ID, float64) {
	e := heap.Pop(&s.h).(entry)
	return e.id, e.score
}

// Clear empties the selector for reuse; capacity is unchanged.
func (s *Selector) Clear() {
	s.h = s.h[:0]
}

// Result drains the selector and returns the retained elements sorted by
// score descending. The selector is empty afterwards.
func (s *Selector) Result() []model.Recommendation {
	out := make([]model.Recommendation, len(s.h))
	for i := len(s.h) - 1; i >= 0; i-- {
		id, sc := s.PollMin()
		out[i] = model.Recommendation{ID: id, Score: sc}
	}
	return out
}
