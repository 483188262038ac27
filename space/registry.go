package space

import (
	"fmt"
	"sync"

	"github.com/jizhihang/NonMetricSpaceLib/parambag"
)

// ValueType tags which of the three compiled distance-value variants a
// space or index operates over.
type ValueType int

const (
	ValueInt32 ValueType = iota
	ValueFloat32
	ValueFloat64
)

// String returns a short human-readable name for the value type.
func (vt ValueType) String() string {
	switch vt {
	case ValueInt32:
		return "int32"
	case ValueFloat32:
		return "float32"
	case ValueFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// registryKey identifies a registered space by value type and name. A space
// constructor is a func(params parambag.Bag) (Space[D], error); the concrete
// D is carried by the registration call, not the map's value type (Go has no
// existential generics), so RegisterSpace/CreateSpace type-assert at the
// boundary.
type registryKey struct {
	valueType ValueType
	name      string
}

var (
	spaceRegistryMu sync.RWMutex
	spaceRegistry   = map[registryKey]any{}
)

// RegisterSpace registers a named space constructor for the given value
// type. Space implementations should call this from an init() function,
// once per ValueType they support.
func RegisterSpace[D Numeric](valueType ValueType, name string, ctor func(params parambag.Bag) (Space[D], error)) {
	spaceRegistryMu.Lock()
	defer spaceRegistryMu.Unlock()
	spaceRegistry[registryKey{valueType, name}] = ctor
}

// CreateSpace constructs a named, registered space for the given value type.
func CreateSpace[D Numeric](valueType ValueType, name string, params parambag.Bag) (Space[D], error) {
	spaceRegistryMu.RLock()
	raw, ok := spaceRegistry[registryKey{valueType, name}]
	spaceRegistryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("space: no space %q registered for value type %s", name, valueType)
	}

	ctor, ok := raw.(func(params parambag.Bag) (Space[D], error))
	if !ok {
		return nil, fmt.Errorf("space: space %q registered for value type %s has an incompatible constructor", name, valueType)
	}

	return ctor(params)
}

func init() {
	RegisterSpace[float32](ValueFloat32, "vector_l2", func(parambag.Bag) (Space[float32], error) {
		return NewVectorSpace[float32](VectorMetricSquaredL2), nil
	})
	RegisterSpace[float32](ValueFloat32, "vector_cosine", func(parambag.Bag) (Space[float32], error) {
		return NewVectorSpace[float32](VectorMetricCosine), nil
	})
	RegisterSpace[float32](ValueFloat32, "vector_dot", func(parambag.Bag) (Space[float32], error) {
		return NewVectorSpace[float32](VectorMetricDot), nil
	})
	RegisterSpace[float64](ValueFloat64, "vector_l2", func(parambag.Bag) (Space[float64], error) {
		return NewVectorSpace[float64](VectorMetricSquaredL2), nil
	})
}
