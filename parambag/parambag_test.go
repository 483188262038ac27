package parambag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	b := Bag{"strategy": "random"}

	v, err := b.Required("strategy")
	require.NoError(t, err)
	assert.Equal(t, "random", v)

	_, err = b.Required("missing")
	require.Error(t, err)
	var missing *ErrMissingParam
	assert.True(t, errors.As(err, &missing))
	assert.Equal(t, "missing", missing.Key)
}

func TestRequiredInt(t *testing.T) {
	b := Bag{"bucketSize": "50", "bad": "nope"}

	n, err := b.RequiredInt("bucketSize")
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	_, err = b.RequiredInt("bad")
	require.Error(t, err)
	var invalid *ErrInvalidParam
	assert.True(t, errors.As(err, &invalid))

	_, err = b.RequiredInt("missing")
	require.Error(t, err)
	var missing *ErrMissingParam
	assert.True(t, errors.As(err, &missing))
}

func TestOptionalLookups(t *testing.T) {
	b := Bag{"useBucketSize": "false", "bucketSize": "10", "radius": "2.5"}

	assert.False(t, b.OptionalBool("useBucketSize", true))
	assert.True(t, b.OptionalBool("chunkBucket", true))
	assert.Equal(t, 10, b.OptionalInt("bucketSize", 50))
	assert.Equal(t, 50, b.OptionalInt("missing", 50))
	assert.InDelta(t, 2.5, b.OptionalFloat("radius", 1), 1e-9)
	assert.Equal(t, "random", b.OptionalString("strategy", "random"))
}

func TestExceptKeys(t *testing.T) {
	b := Bag{"indexQty": "4", "methodName": "list_clusters", "strategy": "random"}

	forwarded := b.ExceptKeys("indexQty", "methodName")
	assert.Equal(t, Bag{"strategy": "random"}, forwarded)
}

func TestEqualIgnoring(t *testing.T) {
	a := Bag{"strategy": "random", "maxLeavesToVisit": "10"}
	b := Bag{"strategy": "random", "maxLeavesToVisit": "20"}

	assert.False(t, a.EqualIgnoring(b))
	assert.True(t, a.EqualIgnoring(b, "maxLeavesToVisit"))
}

func TestString(t *testing.T) {
	b := Bag{"b": "2", "a": "1"}
	assert.Equal(t, "a=1, b=2", b.String())
}
