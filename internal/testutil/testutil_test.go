package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformVectors(8, 32, 10)

	assert.Len(t, v, 8)
	assert.Len(t, v[0], 32)
	assert.LessOrEqual(t, v[0][0], float32(10.0))
	assert.GreaterOrEqual(t, v[1][0], float32(0.0))
}

func TestRandomObjects(t *testing.T) {
	rng := NewRNG(7)

	data := rng.RandomObjects(5, 3, 1)

	assert.Len(t, data, 5)
	for i, obj := range data {
		assert.Equal(t, uint64(i), obj.ID())
		assert.Len(t, obj.Payload(), 12)
	}
}
