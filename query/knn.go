package query

import (
	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// KNNQuery accumulates the k closest objects to a query point, subject to an
// optional approximation tolerance eps. The effective admission radius is
// top/(1+eps): candidates at or beyond that bound are rejected.
type KNNQuery[D space.Numeric] struct {
	sp          space.Space[D]
	queryObject *object.Object
	k           int
	eps         float64
	queue       *KNNQueue[D]
	evals       uint64
}

// NewKNNQuery creates a kNN-query accumulator for the given space, query
// point, k, and eps. k must be positive; eps must be non-negative.
func NewKNNQuery[D space.Numeric](sp space.Space[D], q *object.Object, k int, eps float64) *KNNQuery[D] {
	return &KNNQuery[D]{
		sp:          sp,
		queryObject: q,
		k:           k,
		eps:         eps,
		queue:       NewKNNQueue[D](k),
	}
}

// QueryObject returns the query point.
func (q *KNNQuery[D]) QueryObject() *object.Object { return q.queryObject }

// K returns the requested neighbor count.
func (q *KNNQuery[D]) K() int { return q.k }

// Eps returns the configured approximation tolerance.
func (q *KNNQuery[D]) Eps() float64 { return q.eps }

// Radius returns the live admission bound top/(1+eps). Before the queue
// holds k candidates, every candidate is admissible, so Radius returns the
// maximum representable value of D.
func (q *KNNQuery[D]) Radius() D {
	if q.queue.Len() < q.k {
		return maxValue[D]()
	}
	return scaleByInvEpsFactor(q.queue.TopDistance(), q.eps)
}

func scaleByInvEpsFactor[D space.Numeric](top D, eps float64) D {
	return D(float64(top) / (1 + eps))
}

// DistanceObjLeft computes distance(query, other) and charges it to the
// query's distance-evaluation counter.
func (q *KNNQuery[D]) DistanceObjLeft(other *object.Object) D {
	q.evals++
	return q.sp.Distance(q.queryObject, other)
}

// CheckAndAddToResult admits (d, obj) if d is strictly less than the live
// admission bound Radius(). Ties among equal distances are broken by
// insertion order inside the bounded queue (older wins).
func (q *KNNQuery[D]) CheckAndAddToResult(d D, obj *object.Object) bool {
	if d >= q.Radius() {
		return false
	}
	q.queue.Push(obj, d)
	return true
}

// Submit computes the distance to obj and admits it if it satisfies Radius.
func (q *KNNQuery[D]) Submit(obj *object.Object) bool {
	return q.CheckAndAddToResult(q.DistanceObjLeft(obj), obj)
}

// AddDistanceComputations bumps the distance-evaluation counter by n.
func (q *KNNQuery[D]) AddDistanceComputations(n int) {
	q.evals += uint64(n)
}

// DistanceEvals returns the number of distance evaluations charged so far.
func (q *KNNQuery[D]) DistanceEvals() uint64 { return q.evals }

// Result returns the admitted pairs ordered from best (smallest distance) to
// worst, draining a clone of the live queue so the caller's query is left
// untouched.
func (q *KNNQuery[D]) Result() []Pair[D] {
	clone := q.queue.Clone()
	out := make([]Pair[D], clone.Len())
	for i := len(out) - 1; i >= 0; i-- {
		obj, d := clone.Pop()
		out[i] = Pair[D]{Object: obj, Distance: d}
	}
	return out
}

// Queue exposes the live bounded queue, e.g. for a composer that needs to
// clone and drain it directly (MultiIndex's kNN dedup path).
func (q *KNNQuery[D]) Queue() *KNNQueue[D] { return q.queue }

var _ Query[float32] = (*KNNQuery[float32])(nil)
