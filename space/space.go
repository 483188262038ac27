// Package space defines the pluggable distance-oracle contract the search
// core builds and queries against.
package space

import "github.com/jizhihang/NonMetricSpaceLib/object"

// Numeric bounds the distance-value type an index is parameterized over.
// The original library compiled three template instantiations (int, float,
// double); one generic bound over an ordered, zero-valued numeric type
// replaces them here.
type Numeric interface {
	~int32 | ~float32 | ~float64
}

// Space computes a distance between two objects. It is not assumed to be
// metric: symmetry, triangle inequality, and non-negativity are NOT required
// by this interface, though specific index families (e.g. lc.LC) may assume
// subsets of these and document where their guarantees degrade.
type Space[D Numeric] interface {
	// Distance is the query-time distance, counted toward a query's
	// distance-evaluation counter by the query accumulator.
	Distance(a, b *object.Object) D

	// IndexTimeDistance is the build-time distance. It may be a cheaper or
	// approximate variant, but must be consistent with what index pruning
	// assumes. Implementations that don't distinguish it from Distance can
	// use Base, whose two methods call the same DistanceFunc.
	IndexTimeDistance(a, b *object.Object) D
}

// Base is a Space built from a single distance function, for spaces that
// don't need a separate build-time routine: set DistanceFunc and both
// Distance and IndexTimeDistance call it. An embedding type's own Distance
// method is not used by Base.IndexTimeDistance.
type Base[D Numeric] struct {
	DistanceFunc func(a, b *object.Object) D
}

// Distance invokes the embedding space's configured distance function.
func (b Base[D]) Distance(a, x *object.Object) D {
	return b.DistanceFunc(a, x)
}

// IndexTimeDistance aliases Distance.
func (b Base[D]) IndexTimeDistance(a, x *object.Object) D {
	return b.DistanceFunc(a, x)
}
