// Package query implements the stateful result-accumulators shared by every
// query kind: the query point, search tolerance, a running result set, and a
// count of distance evaluations.
package query

import (
	"math"

	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// Pair is one admitted (distance, object) result.
type Pair[D space.Numeric] struct {
	Object   *object.Object
	Distance D
}

// Query is the common accumulator surface both RangeQuery and KNNQuery
// implement. Index search algorithms that are kind-agnostic (LC's GenSearch)
// operate over this interface rather than a concrete query type, mirroring
// the template-over-QueryType pattern in the original library's GenSearch.
type Query[D space.Numeric] interface {
	// QueryObject returns the query point.
	QueryObject() *object.Object

	// Radius returns the current admission bound: the fixed radius for a
	// range query, or the live top/(1+eps) bound for a kNN query.
	Radius() D

	// DistanceObjLeft computes the distance from the query point to other
	// and increments the distance-evaluation counter.
	DistanceObjLeft(other *object.Object) D

	// CheckAndAddToResult admits (d, obj) into the result set if it
	// satisfies the query's admission rule.
	CheckAndAddToResult(d D, obj *object.Object) bool

	// Submit computes the distance to obj and admits it; equivalent to
	// CheckAndAddToResult(DistanceObjLeft(obj), obj).
	Submit(obj *object.Object) bool

	// AddDistanceComputations bumps the distance-evaluation counter by n,
	// used when a child structure has already performed distance work.
	AddDistanceComputations(n int)

	// DistanceEvals returns the number of distance evaluations charged to
	// this query so far.
	DistanceEvals() uint64
}

// maxValue returns the largest representable value of D, used as the
// admission bound before a kNN queue has accumulated k candidates.
func maxValue[D space.Numeric]() D {
	var zero D
	switch any(zero).(type) {
	case int32:
		return any(int32(math.MaxInt32)).(D)
	case float32:
		return any(float32(math.MaxFloat32)).(D)
	default:
		return any(float64(math.MaxFloat64)).(D)
	}
}
