package index

import (
	"fmt"
	"sync"

	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/parambag"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// Constructor builds a named index family from a space, dataset, and
// parameter bag. The print-progress flag mirrors the original factory's
// CreateMethod signature; implementations that don't report progress may
// ignore it.
type Constructor[D space.Numeric] func(printProgress bool, sp space.Space[D], data object.ObjectVector, params parambag.Bag) (Index[D], error)

type methodKey struct {
	valueType space.ValueType
	name      string
}

var (
	methodRegistryMu sync.RWMutex
	methodRegistry   = map[methodKey]any{}
)

// RegisterMethod registers a named index constructor for the given value
// type. Index implementations should call this from an init() function,
// once per space.ValueType they support.
//
// The registry is a process-wide singleton populated at startup; callers
// must ensure registration happens before the first CreateMethod call
// (package init() order across the families in this module guarantees
// this automatically).
func RegisterMethod[D space.Numeric](valueType space.ValueType, name string, ctor Constructor[D]) {
	methodRegistryMu.Lock()
	defer methodRegistryMu.Unlock()
	methodRegistry[methodKey{valueType, name}] = ctor
}

// CreateMethod constructs a named, registered index for the given value
// type, space, dataset, and parameters.
//
// The factory itself is stateless regarding build reuse: a caller that
// builds two indices of the same name back-to-back with parameter bags
// differing only in keys reported by QueryTimeParamNames may skip the
// second CreateMethod call and instead call SetQueryTimeParams on the
// existing index. That sharing policy lives entirely on the caller's side.
func CreateMethod[D space.Numeric](printProgress bool, name string, valueType space.ValueType, sp space.Space[D], data object.ObjectVector, params parambag.Bag) (Index[D], error) {
	methodRegistryMu.RLock()
	raw, ok := methodRegistry[methodKey{valueType, name}]
	methodRegistryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("index: no method %q registered for value type %s", name, valueType)
	}

	ctor, ok := raw.(Constructor[D])
	if !ok {
		return nil, fmt.Errorf("index: method %q registered for value type %s has an incompatible constructor", name, valueType)
	}

	return ctor(printProgress, sp, data, params)
}
