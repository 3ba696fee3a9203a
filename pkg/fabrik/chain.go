package fabrik

import (
	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/fabrik/pkg/math"
)

// Chain is an ordered sequence of joints joined by fixed-length segments.
// joints[0] is the base and joints[len-1] is the end effector.
type Chain struct {
	// Tolerance is the end effector distance at which Solve stops iterating.
	Tolerance float64
	// MaxIterations caps the forward/backward rounds run by one Solve.
	MaxIterations int

	joints      []math.Vec2
	lengths     []float64
	origin      math.Vec2
	totalLength float64

	lastIterations int
	lastReachable  bool
}

// New creates a chain of cfg.SegmentCount uniform segments extending upward
// (decreasing Y) from origin.
func New(origin math.Vec2, cfg ChainConfig) *Chain {
	return WithLengths(origin, cfg.Lengths(), cfg.Tolerance, cfg.MaxIterations)
}

// WithLengths creates a chain with one segment per entry of lengths, laid out
// like New. The slice is copied. Empty lengths yield a single-joint chain.
func WithLengths(origin math.Vec2, lengths []float64, tolerance float64, maxIterations int) *Chain {
	c := &Chain{}
	c.layout(origin, lengths, tolerance, maxIterations)
	return c
}

// Rebuild discards the current pose and rebuilds the chain from cfg at the
// current origin. Nothing from the previous joint layout is kept.
func (c *Chain) Rebuild(cfg ChainConfig) {
	c.layout(c.origin, cfg.Lengths(), cfg.Tolerance, cfg.MaxIterations)
}

// layout resets every field, reusing the joint and length buffers when they
// are large enough.
func (c *Chain) layout(origin math.Vec2, lengths []float64, tolerance float64, maxIterations int) {
	n := len(lengths)
	if cap(c.lengths) >= n {
		c.lengths = c.lengths[:n]
	} else {
		c.lengths = make([]float64, n)
	}
	copy(c.lengths, lengths)

	if cap(c.joints) >= n+1 {
		c.joints = c.joints[:n+1]
	} else {
		c.joints = make([]math.Vec2, n+1)
	}

	c.joints[0] = origin
	pos := origin
	for i, l := range c.lengths {
		pos.Y -= l
		c.joints[i+1] = pos
	}

	c.origin = origin
	c.totalLength = floats.Sum(c.lengths)
	c.Tolerance = tolerance
	c.MaxIterations = maxIterations
	c.lastIterations = 0
	c.lastReachable = false
}

// SetOrigin moves the anchor and joints[0] only. The other joints are stale
// until the next Solve.
func (c *Chain) SetOrigin(origin math.Vec2) {
	c.origin = origin
	c.joints[0] = origin
}

// Origin returns the anchor position.
func (c *Chain) Origin() math.Vec2 {
	return c.origin
}

// Joints returns the joint positions. The slice is owned by the chain and is
// overwritten by the next Solve or Rebuild.
func (c *Chain) Joints() []math.Vec2 {
	return c.joints
}

// Lengths returns a copy of the segment lengths.
func (c *Chain) Lengths() []float64 {
	out := make([]float64, len(c.lengths))
	copy(out, c.lengths)
	return out
}

// EndEffector returns the last joint.
func (c *Chain) EndEffector() math.Vec2 {
	return c.joints[len(c.joints)-1]
}

// TotalLength returns the maximum reach of the chain.
func (c *Chain) TotalLength() float64 {
	return c.totalLength
}

// JointCount returns the number of joints.
func (c *Chain) JointCount() int {
	return len(c.joints)
}

// SegmentCount returns the number of segments.
func (c *Chain) SegmentCount() int {
	return len(c.lengths)
}

// Iterations returns how many forward/backward rounds the last Solve ran.
// It is zero when the target was out of reach.
func (c *Chain) Iterations() int {
	return c.lastIterations
}

// Reachable reports whether the last Solve took the iterative branch.
func (c *Chain) Reachable() bool {
	return c.lastReachable
}

// Residual returns the distance from the end effector to target.
func (c *Chain) Residual(target math.Vec2) float64 {
	return c.EndEffector().Distance(target)
}
