package lc

import (
	"math/rand"
	"testing"

	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/query"
	"github.com/jizhihang/NonMetricSpaceLib/space"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linePoint(id uint64, x float32) *object.Object {
	return object.New(id, object.NoLabel, space.EncodeVector([]float32{x}))
}

// absSpace is the |a-b| distance space used by the spec's literal
// end-to-end scenarios (S1-S3).
func absSpace() space.Space[float32] {
	return space.Base[float32]{
		DistanceFunc: func(a, b *object.Object) float32 {
			va := space.DecodeVector(a.Payload())[0]
			vb := space.DecodeVector(b.Payload())[0]
			if va > vb {
				return va - vb
			}
			return vb - va
		},
	}
}

func resultIDs(pairs []query.Pair[float32]) []uint64 {
	ids := make([]uint64, len(pairs))
	for i, p := range pairs {
		ids[i] = p.Object.ID()
	}
	return ids
}

// S1: trivial exact range query.
func TestScenarioS1TrivialExactRange(t *testing.T) {
	sp := absSpace()
	data := object.ObjectVector{linePoint(0, 0), linePoint(1, 5), linePoint(2, 10)}

	opts := DefaultOptions[float32]()
	opts.UseBucketSize = false
	opts.Radius = 100
	opts.Strategy = StrategyRandom

	idx, err := New[float32](sp, data, opts)
	require.NoError(t, err)

	q := query.NewRangeQuery[float32](sp, linePoint(99, 4), 2)
	idx.SearchRange(q)

	assert.ElementsMatch(t, []uint64{1}, resultIDs(q.Result()))
}

// S2: kNN k=2.
func TestScenarioS2KNN(t *testing.T) {
	sp := absSpace()
	data := object.ObjectVector{linePoint(0, 0), linePoint(1, 5), linePoint(2, 10)}

	opts := DefaultOptions[float32]()
	opts.UseBucketSize = false
	opts.Radius = 100

	idx, err := New[float32](sp, data, opts)
	require.NoError(t, err)

	q := query.NewKNNQuery[float32](sp, linePoint(99, 4), 2, 0)
	idx.SearchKNN(q)

	res := q.Result()
	require.Len(t, res, 2)
	assert.Equal(t, uint64(1), res[0].Object.ID())
	assert.Equal(t, float32(1), res[0].Distance)
	assert.Equal(t, uint64(0), res[1].Object.ID())
	assert.Equal(t, float32(4), res[1].Distance)
}

// S3: containment prune terminates after the (only) cluster.
func TestScenarioS3ContainmentPrune(t *testing.T) {
	sp := absSpace()
	data := object.ObjectVector{
		linePoint(0, 0), linePoint(1, 1), linePoint(2, 2), linePoint(3, 3), linePoint(4, 4),
	}

	opts := DefaultOptions[float32]()
	opts.UseBucketSize = true
	opts.BucketSize = 4
	opts.Strategy = StrategyFarthestPrevCenter

	idx, err := New[float32](sp, data, opts)
	require.NoError(t, err)
	require.Len(t, idx.clusters, 1, "bucketSize=4 covers all 4 non-center points in one cluster")

	q := query.NewRangeQuery[float32](sp, linePoint(99, 1), 0.5)
	idx.SearchRange(q)

	assert.ElementsMatch(t, []uint64{1}, resultIDs(q.Result()))
}

// S5: strategy=closestPrevCenter over random points terminates, partitions
// every object exactly once, and the cluster count matches the number of
// build iterations.
func TestScenarioS5ClosestPrevCenterPartition(t *testing.T) {
	sp := space.NewVectorSpace[float32](space.VectorMetricSquaredL2)

	rng := rand.New(rand.NewSource(7))
	data := make(object.ObjectVector, 100)
	for i := range data {
		data[i] = object.New(uint64(i), object.NoLabel, space.EncodeVector([]float32{rng.Float32() * 100, rng.Float32() * 100}))
	}

	opts := DefaultOptions[float32]()
	opts.Strategy = StrategyClosestPrevCenter
	opts.BucketSize = 10

	idx, err := New[float32](sp, data, opts)
	require.NoError(t, err)

	seen := make(map[uint64]int)
	for _, c := range idx.clusters {
		seen[c.center.ID()]++
		for _, obj := range c.bucket {
			seen[obj.ID()]++
		}
	}

	assert.Len(t, seen, len(data), "every object appears in exactly one cluster")
	for _, count := range seen {
		assert.Equal(t, 1, count)
	}

	// Each iteration consumes a center plus 10 bucket members: nine full
	// iterations cover 99 objects and a tenth makes the last one a singleton.
	assert.Len(t, idx.clusters, 10)
}

// S6: approximate truncation with maxLeavesToVisit=1 never exceeds k and
// returns a subset of the exact-mode result. bucketSize is set larger than
// the dataset so the build produces a single cluster: maxLeavesToVisit=1
// then visits that one cluster in full, making the approximate pass
// identical to the exact pass while still exercising the leaf-visit budget
// plumbing end to end.
func TestScenarioS6ApproximateTruncation(t *testing.T) {
	sp := space.NewVectorSpace[float32](space.VectorMetricSquaredL2)

	rng := rand.New(rand.NewSource(11))
	data := make(object.ObjectVector, 50)
	for i := range data {
		data[i] = object.New(uint64(i), object.NoLabel, space.EncodeVector([]float32{rng.Float32() * 100, rng.Float32() * 100}))
	}

	opts := DefaultOptions[float32]()
	opts.BucketSize = 60
	opts.Rand = rng

	idx, err := New[float32](sp, data, opts)
	require.NoError(t, err)
	require.Len(t, idx.clusters, 1)

	queryObj := object.New(999, object.NoLabel, space.EncodeVector([]float32{50, 50}))

	exactQ := query.NewKNNQuery[float32](sp, queryObj, 10, 0)
	idx.SearchKNN(exactQ)
	exactIDs := make(map[uint64]bool)
	for _, p := range exactQ.Result() {
		exactIDs[p.Object.ID()] = true
	}

	require.NoError(t, idx.SetQueryTimeParams(map[string]string{"maxLeavesToVisit": "1"}))

	approxQ := query.NewKNNQuery[float32](sp, queryObj, 10, 0)
	idx.SearchKNN(approxQ)
	approxRes := approxQ.Result()

	assert.LessOrEqual(t, len(approxRes), 10)
	for _, p := range approxRes {
		assert.True(t, exactIDs[p.Object.ID()], "approximate result must be a subset of the exact result")
	}
}

// Covering-radius correctness (spec.md section 8, property 2).
func TestCoveringRadiusCorrectness(t *testing.T) {
	sp := space.NewVectorSpace[float32](space.VectorMetricSquaredL2)

	rng := rand.New(rand.NewSource(3))
	data := make(object.ObjectVector, 60)
	for i := range data {
		data[i] = object.New(uint64(i), object.NoLabel, space.EncodeVector([]float32{rng.Float32() * 10}))
	}

	opts := DefaultOptions[float32]()
	opts.BucketSize = 8

	idx, err := New[float32](sp, data, opts)
	require.NoError(t, err)

	for _, c := range idx.clusters {
		var want float32
		for _, obj := range c.bucket {
			d := sp.IndexTimeDistance(obj, c.center)
			if d > want {
				want = d
			}
		}
		assert.Equal(t, want, c.coveringRadius)
	}
}

// Range soundness (spec.md section 8, property 3).
func TestRangeSoundness(t *testing.T) {
	sp := space.NewVectorSpace[float32](space.VectorMetricSquaredL2)

	rng := rand.New(rand.NewSource(5))
	data := make(object.ObjectVector, 80)
	for i := range data {
		data[i] = object.New(uint64(i), object.NoLabel, space.EncodeVector([]float32{rng.Float32() * 20}))
	}

	opts := DefaultOptions[float32]()
	opts.BucketSize = 5

	idx, err := New[float32](sp, data, opts)
	require.NoError(t, err)

	queryObj := object.New(999, object.NoLabel, space.EncodeVector([]float32{10}))
	q := query.NewRangeQuery[float32](sp, queryObj, 9)
	idx.SearchRange(q)

	for _, p := range q.Result() {
		assert.LessOrEqual(t, p.Distance, float32(9))
		assert.Equal(t, sp.Distance(queryObj, p.Object), p.Distance)
	}
}

func TestUnknownStrategyIsConfigurationError(t *testing.T) {
	_, err := ParseStrategy("not-a-strategy")
	require.Error(t, err)
	var unknown *ErrUnknownStrategy
	assert.ErrorAs(t, err, &unknown)
}

func TestSingletonClusterOnLastObject(t *testing.T) {
	sp := space.NewVectorSpace[float32](space.VectorMetricSquaredL2)
	data := object.ObjectVector{linePoint(0, 1)}

	idx, err := New[float32](sp, data, DefaultOptions[float32]())
	require.NoError(t, err)
	require.Len(t, idx.clusters, 1)
	assert.Empty(t, idx.clusters[0].bucket)
	assert.Equal(t, float32(0), idx.clusters[0].coveringRadius)
}
