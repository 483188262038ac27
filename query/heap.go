package query

import (
	"container/heap"

	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// knnItem is one admitted candidate in a KNNQueue.
type knnItem[D space.Numeric] struct {
	object   *object.Object
	distance D
	seq      uint64 // insertion order, used to break distance ties (older wins)
}

// knnHeap is a max-heap over knnItem.distance: the worst admitted candidate
// sits on top, ready to be evicted when a better one arrives. Grounded on
// queue.PriorityQueue's container/heap.Interface implementation in the
// teacher, specialized to always sort worst-first.
type knnHeap[D space.Numeric] []*knnItem[D]

func (h knnHeap[D]) Len() int { return len(h) }

func (h knnHeap[D]) Less(i, j int) bool {
	if h[i].distance != h[j].distance {
		return h[i].distance > h[j].distance
	}
	// Worse (later-inserted) of equal distances sorts to the top so that,
	// among ties, the earlier insertion is the one kept on eviction.
	return h[i].seq > h[j].seq
}

func (h knnHeap[D]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *knnHeap[D]) Push(x any) {
	*h = append(*h, x.(*knnItem[D]))
}

func (h *knnHeap[D]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// KNNQueue is a bounded max-heap of size k keyed on distance: the queue
// always holds the k smallest distances seen, and its top is the worst
// admitted candidate.
type KNNQueue[D space.Numeric] struct {
	k       int
	h       knnHeap[D]
	nextSeq uint64
}

// NewKNNQueue creates an empty queue bounded to k entries.
func NewKNNQueue[D space.Numeric](k int) *KNNQueue[D] {
	return &KNNQueue[D]{k: k}
}

// Len returns the number of admitted candidates (never more than k).
func (q *KNNQueue[D]) Len() int { return q.h.Len() }

// Empty reports whether the queue holds no candidates.
func (q *KNNQueue[D]) Empty() bool { return q.h.Len() == 0 }

// Full reports whether the queue has reached its bound k.
func (q *KNNQueue[D]) Full() bool { return q.h.Len() >= q.k }

// TopDistance returns the distance of the worst admitted candidate.
// The queue must be non-empty.
func (q *KNNQueue[D]) TopDistance() D { return q.h[0].distance }

// TopObject returns the worst admitted candidate's object.
// The queue must be non-empty.
func (q *KNNQueue[D]) TopObject() *object.Object { return q.h[0].object }

// Pop removes and returns the worst admitted candidate.
func (q *KNNQueue[D]) Pop() (*object.Object, D) {
	item := heap.Pop(&q.h).(*knnItem[D])
	return item.object, item.distance
}

// Push inserts a new candidate. If the queue is already at capacity k, this
// evicts the current worst candidate when the new one is strictly better;
// otherwise the new candidate is discarded. Ties among equal distances keep
// the earlier-inserted candidate.
func (q *KNNQueue[D]) Push(obj *object.Object, d D) {
	item := &knnItem[D]{object: obj, distance: d, seq: q.nextSeq}
	q.nextSeq++

	if q.h.Len() < q.k {
		heap.Push(&q.h, item)
		return
	}
	if q.h.Len() > 0 && d < q.h[0].distance {
		q.h[0] = item
		heap.Fix(&q.h, 0)
	}
}

// Clone returns a deep copy of the queue so that a composer can drain a
// snapshot without mutating the live query.
func (q *KNNQueue[D]) Clone() *KNNQueue[D] {
	clone := &KNNQueue[D]{k: q.k, nextSeq: q.nextSeq, h: make(knnHeap[D], len(q.h))}
	for i, item := range q.h {
		cp := *item
		clone.h[i] = &cp
	}
	return clone
}
