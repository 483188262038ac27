package lc

import (
	"math/rand"

	"github.com/jizhihang/NonMetricSpaceLib/parambag"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// FakeMaxLeavesToVisit is the sentinel value for MaxLeavesToVisit meaning
// "unlimited / exact mode."
const FakeMaxLeavesToVisit = -1

// Options are the build and query-time parameters for an LC index. Field
// names double as the external parameter-bag keys (lowercased first
// letter), matching the contract in spec.md section 4.4.
type Options[D space.Numeric] struct {
	// Strategy picks the next cluster center from the remaining pool.
	Strategy Strategy
	// UseBucketSize selects the bucket-size-cutoff build mode (true) or the
	// radius-cutoff build mode (false).
	UseBucketSize bool
	// BucketSize caps cluster membership when UseBucketSize is true.
	BucketSize int
	// Radius caps cluster membership when UseBucketSize is false.
	Radius D
	// ChunkBucket reorganizes each bucket into a right-sized allocation
	// after build, for cache locality. Logical contents are unchanged.
	ChunkBucket bool
	// MaxLeavesToVisit bounds clusters scanned in approximate search.
	// FakeMaxLeavesToVisit means unlimited / exact mode.
	MaxLeavesToVisit int

	// Rand supplies randomness for StrategyRandom and tie-breaking in the
	// sum-distance strategies. Defaults to a package-seeded source if nil.
	Rand *rand.Rand
}

// DefaultOptions returns the documented defaults: strategy=random,
// useBucketSize=true, bucketSize=50, radius=1, chunkBucket=true,
// maxLeavesToVisit=FakeMaxLeavesToVisit (exact mode).
func DefaultOptions[D space.Numeric]() Options[D] {
	return Options[D]{
		Strategy:         StrategyRandom,
		UseBucketSize:    true,
		BucketSize:       50,
		Radius:           D(1),
		ChunkBucket:      true,
		MaxLeavesToVisit: FakeMaxLeavesToVisit,
	}
}

// OptionsFromParams parses build options from a parameter bag, applying
// the documented defaults for any key not present.
func OptionsFromParams[D space.Numeric](params parambag.Bag) (Options[D], error) {
	opts := DefaultOptions[D]()

	strategy, err := ParseStrategy(params.OptionalString("strategy", opts.Strategy.String()))
	if err != nil {
		return opts, err
	}
	opts.Strategy = strategy

	opts.UseBucketSize = params.OptionalBool("useBucketSize", opts.UseBucketSize)
	opts.BucketSize = params.OptionalInt("bucketSize", opts.BucketSize)
	opts.Radius = D(params.OptionalFloat("radius", float64(opts.Radius)))
	opts.ChunkBucket = params.OptionalBool("chunkBucket", opts.ChunkBucket)
	opts.MaxLeavesToVisit = params.OptionalInt("maxLeavesToVisit", opts.MaxLeavesToVisit)

	return opts, nil
}

// queryTimeParamNames declares which parameter-bag keys are safe to change
// without rebuilding.
func queryTimeParamNames() map[string]struct{} {
	return map[string]struct{}{"maxLeavesToVisit": {}}
}
