// Package testutil provides shared test fixtures: a seeded RNG and random
// object-vector generation, used by the root package's end-to-end Engine
// tests to build datasets.
package testutil

import (
	"math/rand"

	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// RNG encapsulates the random number generator and seed behind a narrow,
// test-stable surface.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 { return r.seed }

// Rand exposes the underlying *rand.Rand, e.g. for passing as lc.Options'
// Rand field so a test can control build-time randomness directly.
func (r *RNG) Rand() *rand.Rand { return r.rand }

// UniformVectors generates num random vectors of the given dimension, each
// coordinate uniform in [0, scale).
func (r *RNG) UniformVectors(num, dimensions int, scale float32) [][]float32 {
	vectors := make([][]float32, num)
	for i := range vectors {
		vectors[i] = make([]float32, dimensions)
		for j := range vectors[i] {
			vectors[i][j] = r.rand.Float32() * scale
		}
	}
	return vectors
}

// RandomObjects builds an ObjectVector of count objects with dense ids
// 0..count-1, unlabeled, each payload a random vector of the given
// dimension encoded with space.EncodeVector.
func (r *RNG) RandomObjects(count, dimensions int, scale float32) object.ObjectVector {
	vectors := r.UniformVectors(count, dimensions, scale)
	data := make(object.ObjectVector, count)
	for i, v := range vectors {
		data[i] = object.New(uint64(i), object.NoLabel, space.EncodeVector(v))
	}
	return data
}
