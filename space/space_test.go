package space

import (
	"testing"

	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/parambag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(id uint64, v ...float32) *object.Object {
	return object.New(id, object.NoLabel, EncodeVector(v))
}

func TestVectorSpaceSquaredL2(t *testing.T) {
	sp := NewVectorSpace[float32](VectorMetricSquaredL2)

	a := point(1, 0, 0)
	b := point(2, 3, 4)

	d := sp.Distance(a, b)
	assert.InDelta(t, float32(25), d, 1e-6)
	assert.Equal(t, sp.IndexTimeDistance(a, b), d)
}

func TestVectorSpaceCosine(t *testing.T) {
	sp := NewVectorSpace[float32](VectorMetricCosine)

	a := point(1, 1, 0)
	b := point(2, 1, 0)
	c := point(3, 0, 1)

	assert.InDelta(t, float32(0), sp.Distance(a, b), 1e-6)
	assert.InDelta(t, float32(1), sp.Distance(a, c), 1e-6)
}

func TestBaseAliasesIndexTimeDistance(t *testing.T) {
	calls := 0
	base := Base[int32]{
		DistanceFunc: func(a, b *object.Object) int32 {
			calls++
			return int32(a.ID()) - int32(b.ID())
		},
	}

	a := object.New(5, object.NoLabel, nil)
	b := object.New(3, object.NoLabel, nil)

	assert.Equal(t, int32(2), base.Distance(a, b))
	assert.Equal(t, int32(2), base.IndexTimeDistance(a, b))
	assert.Equal(t, 2, calls)
}

func TestEncodeDecodeVectorRoundTrip(t *testing.T) {
	v := []float32{1.5, -2.25, 0, 100}
	assert.Equal(t, v, DecodeVector(EncodeVector(v)))
}

func TestSpaceRegistry(t *testing.T) {
	sp, err := CreateSpace[float32](ValueFloat32, "vector_l2", parambag.Bag{})
	require.NoError(t, err)
	require.NotNil(t, sp)

	_, err = CreateSpace[float32](ValueFloat32, "does_not_exist", parambag.Bag{})
	assert.Error(t, err)

	_, err = CreateSpace[int32](ValueInt32, "vector_l2", parambag.Bag{})
	assert.Error(t, err)
}
