package space

import (
	"encoding/binary"
	"math"

	"github.com/jizhihang/NonMetricSpaceLib/object"
)

// EncodeVector packs a float32 vector into the opaque payload bytes an
// object carries. VectorSpace decodes payloads with DecodeVector.
func EncodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

// DecodeVector unpacks an object payload encoded by EncodeVector.
func DecodeVector(payload []byte) []float32 {
	v := make([]float32, len(payload)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
	}
	return v
}

// VectorMetric names a distance function a VectorSpace can use.
type VectorMetric int

const (
	// VectorMetricSquaredL2 is the squared Euclidean distance.
	VectorMetricSquaredL2 VectorMetric = iota
	// VectorMetricCosine is 1 - cosine similarity, so smaller means closer.
	VectorMetricCosine
	// VectorMetricDot is the negated dot product, so smaller means closer.
	VectorMetricDot
)

// VectorSpace is a concrete Space over float32 vectors stored as object
// payloads encoded with EncodeVector. It supports the same distance family
// as the teacher's metric package, generalized over the three distance
// value types this core supports.
type VectorSpace[D Numeric] struct {
	Metric VectorMetric
}

// NewVectorSpace creates a VectorSpace using the given metric.
func NewVectorSpace[D Numeric](metric VectorMetric) *VectorSpace[D] {
	return &VectorSpace[D]{Metric: metric}
}

// Distance computes the configured vector metric between two objects'
// decoded payloads.
func (s *VectorSpace[D]) Distance(a, b *object.Object) D {
	va := DecodeVector(a.Payload())
	vb := DecodeVector(b.Payload())

	switch s.Metric {
	case VectorMetricCosine:
		return D(1 - cosineSimilarity(va, vb))
	case VectorMetricDot:
		return D(-dot(va, vb))
	default:
		return D(squaredL2(va, vb))
	}
}

// IndexTimeDistance aliases Distance; VectorSpace uses the same routine for
// build-time and query-time distance.
func (s *VectorSpace[D]) IndexTimeDistance(a, b *object.Object) D {
	return s.Distance(a, b)
}

func dot(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func magnitude(v []float32) float32 {
	return float32(math.Sqrt(float64(dot(v, v))))
}

func cosineSimilarity(a, b []float32) float32 {
	ma, mb := magnitude(a), magnitude(b)
	if ma == 0 || mb == 0 {
		return 0
	}
	return dot(a, b) / (ma * mb)
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
