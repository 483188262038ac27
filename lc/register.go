package lc

import (
	"github.com/jizhihang/NonMetricSpaceLib/index"
	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/parambag"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// MethodName is the external name this index family registers itself under
// in the index factory.
const MethodName = "list_clusters"

func init() {
	index.RegisterMethod[int32](space.ValueInt32, MethodName, construct[int32])
	index.RegisterMethod[float32](space.ValueFloat32, MethodName, construct[float32])
	index.RegisterMethod[float64](space.ValueFloat64, MethodName, construct[float64])
}

// construct adapts New to the index.Constructor signature; LC's build is
// single-threaded and has no progress to report, so printProgress is unused.
func construct[D space.Numeric](printProgress bool, sp space.Space[D], data object.ObjectVector, params parambag.Bag) (index.Index[D], error) {
	opts, err := OptionsFromParams[D](params)
	if err != nil {
		return nil, err
	}
	return New[D](sp, data, opts)
}
