package lc

import (
	"github.com/jizhihang/NonMetricSpaceLib/object"
	"github.com/jizhihang/NonMetricSpaceLib/query"
	"github.com/jizhihang/NonMetricSpaceLib/space"
)

// cluster is a center, its covering radius, and the bucket of member
// objects within that radius (or within the bucket-size cutoff). Every
// object in the bucket satisfies IndexTimeDistance(obj, center) <=
// coveringRadius; coveringRadius is the maximum such distance observed at
// build time; the bucket never contains the center itself.
type cluster[D space.Numeric] struct {
	center         *object.Object
	coveringRadius D
	bucket         object.ObjectVector
}

// addObject records a member, growing the covering radius if needed.
func (c *cluster[D]) addObject(obj *object.Object, dist D) {
	c.bucket = append(c.bucket, obj)
	if dist > c.coveringRadius {
		c.coveringRadius = dist
	}
}

// optimize re-copies the bucket into a freshly allocated, exact-length
// slice. Go slices built by incremental append carry spare capacity from
// geometric growth; this is the Go-native analogue of the original's
// cache-optimized contiguous bucket arena. The logical contents (order,
// membership) are unchanged.
func (c *cluster[D]) optimize() {
	if cap(c.bucket) == len(c.bucket) {
		return
	}
	tight := make(object.ObjectVector, len(c.bucket))
	copy(tight, c.bucket)
	c.bucket = tight
}

// search submits every bucket member to q, letting q's own admission rule
// decide what's kept. The center is not submitted here; callers submit it
// themselves before deciding whether to scan the bucket.
func (c *cluster[D]) search(q query.Query[D]) {
	for _, obj := range c.bucket {
		q.Submit(obj)
	}
}
