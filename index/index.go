// Package index defines the polymorphic index contract every concrete
// family (lc.LC, multiindex.MultiIndex) implements, plus the process-wide
// factory that constructs them by name.
package index

import (
	"github.com/jizhihang/NonMetricSpaceLib/parambag"
	"github.com/jizhihang/NonMetricSpaceLib/query"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// Index is the contract every concrete index family implements. Indices are
// built at construction time by a family-specific constructor (registered
// with RegisterMethod) and are read-only afterward except for query-time
// tunables.
type Index[D space.Numeric] interface {
	// SearchRange mutates query in place, admitting every object within its
	// radius of its query point.
	SearchRange(q *query.RangeQuery[D])

	// SearchKNN mutates query in place, admitting the k closest objects to
	// its query point (subject to its eps tolerance).
	SearchKNN(q *query.KNNQuery[D])

	// SetQueryTimeParams mutates tunables that are safe to change without
	// rebuilding. It must never invalidate stored data. Not safe to call
	// concurrently with an in-flight Search.
	SetQueryTimeParams(params parambag.Bag) error

	// QueryTimeParamNames declares which keys from a parameter bag are
	// query-time tunables, letting a caller decide when two successive
	// build requests differ only in query-time params and can share the
	// same built index via SetQueryTimeParams instead of rebuilding.
	QueryTimeParamNames() map[string]struct{}

	// String returns a short human-readable description, for logging and
	// reporting.
	String() string
}
