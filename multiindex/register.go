package multiindex

import (
	"github.com/jizhihang/NonMetricSpaceLib/index"
	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/parambag"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// FamilyName is the external name this composer registers itself under in
// the index factory.
const FamilyName = "multi_index"

func init() {
	index.RegisterMethod[int32](space.ValueInt32, FamilyName, construct[int32](space.ValueInt32))
	index.RegisterMethod[float32](space.ValueFloat32, FamilyName, construct[float32](space.ValueFloat32))
	index.RegisterMethod[float64](space.ValueFloat64, FamilyName, construct[float64](space.ValueFloat64))
}

// construct adapts New to the index.Constructor signature. indexQty and
// methodName are required bag keys; every other key except printProgress is
// forwarded unchanged to each child's own construction. The factory contract has no concurrency
// knob, so registered construction always builds children sequentially;
// callers that want concurrent child construction call NewParallel directly.
func construct[D space.Numeric](valueType space.ValueType) index.Constructor[D] {
	return func(printProgress bool, sp space.Space[D], data object.ObjectVector, params parambag.Bag) (index.Index[D], error) {
		indexQty, err := params.RequiredInt("indexQty")
		if err != nil {
			return nil, err
		}
		methodName, err := params.Required("methodName")
		if err != nil {
			return nil, err
		}
		remainParams := params.ExceptKeys("indexQty", "methodName", "printProgress")

		return New[D](sp, valueType, methodName, indexQty, data, remainParams, printProgress)
	}
}
