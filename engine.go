// Package nonmetric is a library for approximate and exact nearest-neighbor
// search over arbitrary, possibly non-metric, distance spaces. It composes
// three pieces: a pluggable distance space (package space), a named index
// family built and queried through a common contract (package index, with
// concrete families in lc and multiindex), and a string-keyed parameter bag
// (package parambag) for configuring both.
//
// # Quick start
//
//	sp := space.NewVectorSpace[float32](space.VectorMetricSquaredL2)
//	eng, err := nonmetric.Build[float32](sp, space.ValueFloat32, lc.MethodName, data, parambag.Bag{
//	    "bucketSize": "50",
//	})
//	if err != nil {
//	    panic(err)
//	}
//	q := query.NewKNNQuery[float32](sp, queryObject, 10, 0)
//	eng.SearchKNN(context.Background(), q)
package nonmetric

import (
	"context"
	"time"

	"github.com/jizhihang/NonMetricSpaceLib/index"
	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/parambag"
	"github.com/jizhihang/NonMetricSpaceLib/query"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// Engine wraps a built index.Index with the logging and metrics that every
// build and search call goes through.
type Engine[D space.Numeric] struct {
	idx     index.Index[D]
	logger  *Logger
	metrics MetricsCollector
}

// Option configures an Engine at construction time.
type Option func(*engineOptions)

type engineOptions struct {
	logger           *Logger
	metricsCollector MetricsCollector
	printProgress    bool
}

func defaultEngineOptions() *engineOptions {
	return &engineOptions{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// WithLogger sets the Engine's logger. Defaults to NoopLogger.
func WithLogger(logger *Logger) Option {
	return func(o *engineOptions) { o.logger = logger }
}

// WithMetricsCollector sets the Engine's metrics collector. Defaults to
// NoopMetricsCollector.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *engineOptions) { o.metricsCollector = collector }
}

// WithPrintProgress forwards a progress-reporting hint to the underlying
// method constructor.
func WithPrintProgress(printProgress bool) Option {
	return func(o *engineOptions) { o.printProgress = printProgress }
}

// Build constructs a named, registered index family over data and wraps it
// in an Engine. methodName must have been registered for valueType via
// index.RegisterMethod (every family in this module, including lc and
// multiindex, registers itself from an init() function).
func Build[D space.Numeric](sp space.Space[D], valueType space.ValueType, methodName string, data object.ObjectVector, params parambag.Bag, optFns ...Option) (*Engine[D], error) {
	opts := defaultEngineOptions()
	for _, fn := range optFns {
		fn(opts)
	}

	start := time.Now()
	idx, err := index.CreateMethod[D](opts.printProgress, methodName, valueType, sp, data, params)
	duration := time.Since(start)

	opts.metricsCollector.RecordBuild(len(data), duration, err)
	opts.logger.LogBuild(context.Background(), methodName, len(data), err)

	if err != nil {
		return nil, translateError(err)
	}

	return &Engine[D]{idx: idx, logger: opts.logger, metrics: opts.metricsCollector}, nil
}

// SearchRange runs a range search, instrumenting it with the Engine's
// logger and metrics collector.
func (e *Engine[D]) SearchRange(ctx context.Context, q *query.RangeQuery[D]) {
	start := time.Now()
	e.idx.SearchRange(q)
	duration := time.Since(start)

	res := q.Result()
	e.metrics.RecordRangeSearch(len(res), q.DistanceEvals(), duration)
	e.logger.LogRangeSearch(ctx, float64(q.Radius()), len(res), q.DistanceEvals())
}

// SearchKNN runs a kNN search, instrumenting it with the Engine's logger
// and metrics collector.
func (e *Engine[D]) SearchKNN(ctx context.Context, q *query.KNNQuery[D]) {
	start := time.Now()
	e.idx.SearchKNN(q)
	duration := time.Since(start)

	res := q.Result()
	e.metrics.RecordKNNSearch(q.K(), len(res), q.DistanceEvals(), duration)
	e.logger.LogKNNSearch(ctx, q.K(), len(res), q.DistanceEvals())
}

// SetQueryTimeParams forwards to the underlying index, translating its
// error into the public taxonomy.
func (e *Engine[D]) SetQueryTimeParams(params parambag.Bag) error {
	return translateError(e.idx.SetQueryTimeParams(params))
}

// QueryTimeParamNames forwards to the underlying index.
func (e *Engine[D]) QueryTimeParamNames() map[string]struct{} {
	return e.idx.QueryTimeParamNames()
}

// String forwards to the underlying index.
func (e *Engine[D]) String() string {
	return e.idx.String()
}
