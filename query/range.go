package query

import (
	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// RangeQuery accumulates every object within a fixed radius of a query
// point. Every pair in Result satisfies distance <= radius.
type RangeQuery[D space.Numeric] struct {
	sp          space.Space[D]
	queryObject *object.Object
	radius      D
	results     []Pair[D]
	evals       uint64
}

// NewRangeQuery creates a range-query accumulator for the given space,
// query point, and radius.
func NewRangeQuery[D space.Numeric](sp space.Space[D], q *object.Object, radius D) *RangeQuery[D] {
	return &RangeQuery[D]{sp: sp, queryObject: q, radius: radius}
}

// QueryObject returns the query point.
func (q *RangeQuery[D]) QueryObject() *object.Object { return q.queryObject }

// Radius returns the fixed search radius.
func (q *RangeQuery[D]) Radius() D { return q.radius }

// DistanceObjLeft computes distance(query, other) and charges it to the
// query's distance-evaluation counter.
func (q *RangeQuery[D]) DistanceObjLeft(other *object.Object) D {
	q.evals++
	return q.sp.Distance(q.queryObject, other)
}

// CheckAndAddToResult admits (d, obj) if d <= radius.
func (q *RangeQuery[D]) CheckAndAddToResult(d D, obj *object.Object) bool {
	if d > q.radius {
		return false
	}
	q.results = append(q.results, Pair[D]{Object: obj, Distance: d})
	return true
}

// Submit computes the distance to obj and admits it if within radius.
func (q *RangeQuery[D]) Submit(obj *object.Object) bool {
	return q.CheckAndAddToResult(q.DistanceObjLeft(obj), obj)
}

// AddDistanceComputations bumps the distance-evaluation counter by n.
func (q *RangeQuery[D]) AddDistanceComputations(n int) {
	q.evals += uint64(n)
}

// DistanceEvals returns the number of distance evaluations charged so far.
func (q *RangeQuery[D]) DistanceEvals() uint64 { return q.evals }

// Result returns an immutable view of the admitted pairs.
func (q *RangeQuery[D]) Result() []Pair[D] {
	out := make([]Pair[D], len(q.results))
	copy(out, q.results)
	return out
}

var _ Query[float32] = (*RangeQuery[float32])(nil)
