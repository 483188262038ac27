// Package multiindex implements MultiIndex: a composer that builds several
// independent copies of the same named index family over the same dataset
// and fans every search out across all of them, deduplicating objects that
// surface from more than one copy.
//
// Grounded on
// similarity_search/src/method/multi_index.cc from the Non-Metric Space
// Library. A lone copy already behaves like the underlying method; stacking
// several copies only pays off for families whose construction is itself
// randomized (e.g. lc.LC with StrategyRandom), where independent copies
// diversify the candidate sets each search sees.
package multiindex

import (
	"fmt"

	"github.com/jizhihang/NonMetricSpaceLib/index"
	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/parambag"
	"github.com/jizhihang/NonMetricSpaceLib/query"
	"github.com/jizhihang/NonMetricSpaceLib/space"
	"golang.org/x/sync/errgroup"
)

// MultiIndex composes indexQty independently built copies of methodName and
// fans every search out across all of them.
type MultiIndex[D space.Numeric] struct {
	sp         space.Space[D]
	methodName string
	indices    []index.Index[D]
}

var _ index.Index[float32] = (*MultiIndex[float32])(nil)

// New builds indexQty copies of methodName sequentially, each over the full
// dataset, using remainParams for every child's own construction. valueType
// must match the registration value type used when methodName was
// registered with index.RegisterMethod.
func New[D space.Numeric](sp space.Space[D], valueType space.ValueType, methodName string, indexQty int, data object.ObjectVector, remainParams parambag.Bag, printProgress bool) (*MultiIndex[D], error) {
	if indexQty < 1 {
		return nil, fmt.Errorf("multiindex: indexQty must be at least 1, got %d", indexQty)
	}

	indices := make([]index.Index[D], 0, indexQty)
	for i := 0; i < indexQty; i++ {
		idx, err := index.CreateMethod[D](printProgress, methodName, valueType, sp, data, remainParams)
		if err != nil {
			return nil, fmt.Errorf("multiindex: building copy %d of %d of %q: %w", i+1, indexQty, methodName, err)
		}
		indices = append(indices, idx)
	}

	return &MultiIndex[D]{sp: sp, methodName: methodName, indices: indices}, nil
}

// NewParallel is equivalent to New but builds the indexQty copies
// concurrently, one goroutine per copy, joined by an errgroup. Every copy's
// construction runs to completion; if any fail, the first error reported is
// returned to the caller.
func NewParallel[D space.Numeric](sp space.Space[D], valueType space.ValueType, methodName string, indexQty int, data object.ObjectVector, remainParams parambag.Bag, printProgress bool) (*MultiIndex[D], error) {
	if indexQty < 1 {
		return nil, fmt.Errorf("multiindex: indexQty must be at least 1, got %d", indexQty)
	}

	indices := make([]index.Index[D], indexQty)

	var g errgroup.Group
	for i := 0; i < indexQty; i++ {
		i := i
		g.Go(func() error {
			idx, err := index.CreateMethod[D](printProgress, methodName, valueType, sp, data, remainParams)
			if err != nil {
				return fmt.Errorf("multiindex: building copy %d of %d of %q: %w", i+1, indexQty, methodName, err)
			}
			indices[i] = idx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &MultiIndex[D]{sp: sp, methodName: methodName, indices: indices}, nil
}

// SearchRange implements index.Index. Each child index is searched with its
// own RangeQuery over the same query point and radius; results are
// deduplicated by object identity as they're folded into query, and each
// child's distance-evaluation count is added to query's own.
func (m *MultiIndex[D]) SearchRange(q *query.RangeQuery[D]) {
	found := make(map[*object.Object]struct{})

	for _, idx := range m.indices {
		tmp := query.NewRangeQuery[D](m.sp, q.QueryObject(), q.Radius())
		idx.SearchRange(tmp)

		q.AddDistanceComputations(int(tmp.DistanceEvals()))
		for _, p := range tmp.Result() {
			if _, dup := found[p.Object]; dup {
				continue
			}
			found[p.Object] = struct{}{}
			q.CheckAndAddToResult(p.Distance, p.Object)
		}
	}
}

// SearchKNN implements index.Index. Each child index is searched with its
// own KNNQuery over the same query point, k, and eps; results are
// deduplicated by object id as they're folded into query, and each child's
// distance-evaluation count is added to query's own.
func (m *MultiIndex[D]) SearchKNN(q *query.KNNQuery[D]) {
	found := make(map[uint64]struct{})

	for _, idx := range m.indices {
		tmp := query.NewKNNQuery[D](m.sp, q.QueryObject(), q.K(), q.Eps())
		idx.SearchKNN(tmp)

		q.AddDistanceComputations(int(tmp.DistanceEvals()))

		clone := tmp.Queue().Clone()
		for !clone.Empty() {
			obj, d := clone.Pop()
			if _, dup := found[obj.ID()]; dup {
				continue
			}
			found[obj.ID()] = struct{}{}
			q.CheckAndAddToResult(d, obj)
		}
	}
}

// SetQueryTimeParams implements index.Index, forwarding to every child.
func (m *MultiIndex[D]) SetQueryTimeParams(params parambag.Bag) error {
	for i, idx := range m.indices {
		if err := idx.SetQueryTimeParams(params); err != nil {
			return fmt.Errorf("multiindex: copy %d of %d: %w", i+1, len(m.indices), err)
		}
	}
	return nil
}

// QueryTimeParamNames implements index.Index. Every copy is built from the
// same method, so the first child's declared names apply to all of them.
func (m *MultiIndex[D]) QueryTimeParamNames() map[string]struct{} {
	if len(m.indices) == 0 {
		return map[string]struct{}{}
	}
	return m.indices[0].QueryTimeParamNames()
}

// String implements index.Index.
func (m *MultiIndex[D]) String() string {
	return fmt.Sprintf("%d copies of %s", len(m.indices), m.methodName)
}
