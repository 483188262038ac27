// Package lc implements the List-of-Clusters index: a sequence of spherical
// clusters covering the dataset, built greedily and queried by ordered
// traversal with triangle-style pruning.
//
// Grounded on
// similarity_search/src/method/list_clusters.cc from the Non-Metric Space
// Library. LC assumes distance symmetry for its containment pruning (the
// dist_qc - radius / dist_qc + radius tests below); on an asymmetric space
// its range-exactness guarantee (spec.md section 8, property 4) degrades,
// even though the Space interface more broadly allows non-metric distances.
package lc

import (
	"container/heap"
	"fmt"
	"math/rand"
	"sort"

	"github.com/jizhihang/NonMetricSpaceLib/index"
	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/parambag"
	"github.com/jizhihang/NonMetricSpaceLib/query"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// ErrInvariantViolation indicates a build-time or search-time invariant was
// broken — a bug in this package or in a caller-supplied distance space,
// never a reachable user-triggerable state.
type ErrInvariantViolation struct {
	Reason string
}

func (e *ErrInvariantViolation) Error() string {
	return fmt.Sprintf("lc: invariant violation: %s", e.Reason)
}

// LC is the List-of-Clusters index. It is built once by New and is
// read-only afterward except for SetQueryTimeParams.
type LC[D space.Numeric] struct {
	sp       space.Space[D]
	clusters []*cluster[D]

	maxLeavesToVisit int // mutated only by SetQueryTimeParams; see its doc
}

var _ index.Index[float32] = (*LC[float32])(nil)

// New builds an LC index over data using opts. Build is single-threaded and
// fails fatally (returns an error) on an unknown strategy or a broken
// single-occurrence invariant; the index is never left partially usable.
func New[D space.Numeric](sp space.Space[D], data object.ObjectVector, opts Options[D]) (*LC[D], error) {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	remaining := make([]remainingItem[D], len(data))
	for i, obj := range data {
		remaining[i] = remainingItem[D]{runningSum: 0, obj: obj}
	}

	var clusters []*cluster[D]

	for len(remaining) > 0 {
		idx, err := selectNextCenterIndex(remaining, opts.Strategy, rng)
		if err != nil {
			return nil, err
		}
		center := remaining[idx].obj

		c := &cluster[D]{center: center}
		clusters = append(clusters, c)

		if len(remaining) == 1 {
			break
		}

		next := make([]remainingItem[D], 0, len(remaining))
		centerSeen := false

		if opts.UseBucketSize {
			dp := make([]scoredItem[D], 0, len(remaining)-1)
			for _, item := range remaining {
				if item.obj == center {
					if centerSeen {
						return nil, &ErrInvariantViolation{Reason: "center seen twice during build"}
					}
					centerSeen = true
					continue
				}
				dp = append(dp, scoredItem[D]{
					dist:       sp.IndexTimeDistance(item.obj, center),
					runningSum: item.runningSum,
					obj:        item.obj,
				})
			}
			sort.SliceStable(dp, func(i, j int) bool { return dp[i].dist < dp[j].dist })

			for _, s := range dp {
				if len(c.bucket) < opts.BucketSize {
					c.addObject(s.obj, s.dist)
				} else {
					next = append(next, remainingItem[D]{runningSum: s.runningSum + s.dist, obj: s.obj})
				}
			}
		} else {
			for _, item := range remaining {
				if item.obj == center {
					if centerSeen {
						return nil, &ErrInvariantViolation{Reason: "center seen twice during build"}
					}
					centerSeen = true
					continue
				}
				dist := sp.IndexTimeDistance(item.obj, center)
				if dist < opts.Radius {
					c.addObject(item.obj, dist)
				} else {
					next = append(next, remainingItem[D]{runningSum: item.runningSum + dist, obj: item.obj})
				}
			}
		}

		remaining = next
	}

	if opts.ChunkBucket {
		for _, c := range clusters {
			c.optimize()
		}
	}

	return &LC[D]{sp: sp, clusters: clusters, maxLeavesToVisit: opts.MaxLeavesToVisit}, nil
}

// remainingItem is one object not yet assigned to a cluster, paired with
// its running sum of distances to previously chosen centers.
type remainingItem[D space.Numeric] struct {
	runningSum D
	obj        *object.Object
}

// scoredItem is a remainingItem annotated with its distance to the
// candidate center currently being scanned.
type scoredItem[D space.Numeric] struct {
	dist       D
	runningSum D
	obj        *object.Object
}

// selectNextCenterIndex implements the five center-selection strategies
// over the pool as it was accumulated by the previous build iteration.
func selectNextCenterIndex[D space.Numeric](remaining []remainingItem[D], strategy Strategy, rng *rand.Rand) (int, error) {
	switch strategy {
	case StrategyRandom:
		return rng.Intn(len(remaining)), nil
	case StrategyClosestPrevCenter:
		// Returns the front of the pool rather than re-scanning for the
		// true minimum running-sum-distance object. This relies on the
		// incidental ordering left by the previous iteration's sort; the
		// behavior is preserved here intentionally (see spec.md section 9).
		return 0, nil
	case StrategyFarthestPrevCenter:
		return len(remaining) - 1, nil
	case StrategyMinSumDistPrevCenters:
		idx := rng.Intn(len(remaining))
		for i := range remaining {
			if remaining[i].runningSum < remaining[idx].runningSum {
				idx = i
			}
		}
		return idx, nil
	case StrategyMaxSumDistPrevCenters:
		idx := rng.Intn(len(remaining))
		for i := range remaining {
			if remaining[i].runningSum > remaining[idx].runningSum {
				idx = i
			}
		}
		return idx, nil
	default:
		return 0, &ErrUnknownStrategy{Value: strategy.String()}
	}
}

// SearchRange implements index.Index.
func (lc *LC[D]) SearchRange(q *query.RangeQuery[D]) {
	lc.genSearch(q)
}

// SearchKNN implements index.Index.
func (lc *LC[D]) SearchKNN(q *query.KNNQuery[D]) {
	lc.genSearch(q)
}

func (lc *LC[D]) genSearch(q query.Query[D]) {
	if lc.maxLeavesToVisit == FakeMaxLeavesToVisit {
		lc.searchExact(q)
		return
	}
	lc.searchApprox(q)
}

// searchExact visits clusters in construction order, pruning by the
// triangle-style containment test, and terminates as soon as a cluster
// fully contains the query ball.
func (lc *LC[D]) searchExact(q query.Query[D]) {
	for _, c := range lc.clusters {
		distQC := q.DistanceObjLeft(c.center)
		q.CheckAndAddToResult(distQC, c.center)

		if distQC-q.Radius() < c.coveringRadius {
			c.search(q)
			if distQC+q.Radius() < c.coveringRadius {
				// All query-ball points are inside this cluster; no later
				// cluster can hold anything closer.
				return
			}
		}
	}
}

// clusterCandidate is one entry of the approximate-search min-heap, keyed
// on distance to the query (closest first).
type clusterCandidate[D space.Numeric] struct {
	cluster *cluster[D]
	distQC  D
}

type candidateHeap[D space.Numeric] []clusterCandidate[D]

func (h candidateHeap[D]) Len() int           { return len(h) }
func (h candidateHeap[D]) Less(i, j int) bool { return h[i].distQC < h[j].distQC }
func (h candidateHeap[D]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap[D]) Push(x any)        { *h = append(*h, x.(clusterCandidate[D])) }
func (h *candidateHeap[D]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// searchApprox collects clusters whose bounding sphere intersects the query
// ball into a min-heap keyed on distance to center, then pops closest-first
// until the heap empties, the leaf budget is spent, or a cluster fully
// contains the query ball.
func (lc *LC[D]) searchApprox(q query.Query[D]) {
	var h candidateHeap[D]

	for _, c := range lc.clusters {
		distQC := q.DistanceObjLeft(c.center)
		q.CheckAndAddToResult(distQC, c.center)

		if distQC-q.Radius() < c.coveringRadius {
			heap.Push(&h, clusterCandidate[D]{cluster: c, distQC: distQC})
		}
	}

	var prevDist D
	leavesVisited := 0

	for h.Len() > 0 && leavesVisited < lc.maxLeavesToVisit {
		top := h[0]
		if top.distQC < prevDist {
			panic(&ErrInvariantViolation{Reason: "popped cluster distance is not monotonic in approximate search"})
		}
		prevDist = top.distQC

		top.cluster.search(q)
		leavesVisited++

		if top.distQC+q.Radius() < top.cluster.coveringRadius {
			return
		}
		heap.Pop(&h)
	}
}

// SetQueryTimeParams implements index.Index. Only maxLeavesToVisit is a
// query-time tunable; it is not safe to call concurrently with an
// in-flight Search.
func (lc *LC[D]) SetQueryTimeParams(params parambag.Bag) error {
	lc.maxLeavesToVisit = params.OptionalInt("maxLeavesToVisit", lc.maxLeavesToVisit)
	return nil
}

// QueryTimeParamNames implements index.Index.
func (lc *LC[D]) QueryTimeParamNames() map[string]struct{} {
	return queryTimeParamNames()
}

// String implements index.Index.
func (lc *LC[D]) String() string {
	return "list of clusters"
}
