package fabrik

import "github.com/Faultbox/fabrik/pkg/math"

// Solve moves the joints toward target, keeping joints[0] fixed.
//
// A target at or beyond the chain's total length is answered directly by
// stretching the chain along the line from the base to the target. Otherwise
// forward and backward reaching passes alternate until the end effector is
// within Tolerance of the target or MaxIterations rounds have run. Solve never
// fails; if the cap is hit the last completed pass is kept.
func (c *Chain) Solve(target math.Vec2) {
	base := c.joints[0]
	c.lastIterations = 0

	if base.DistanceSquared(target) >= c.totalLength*c.totalLength {
		c.lastReachable = false
		c.stretch(base, target)
		return
	}
	c.lastReachable = true

	tolSq := c.Tolerance * c.Tolerance
	last := len(c.joints) - 1
	for range c.MaxIterations {
		if c.joints[last].DistanceSquared(target) <= tolSq {
			break
		}
		c.forwardReach(target)
		c.backwardReach(base)
		c.lastIterations++
	}
}

// stretch lays the chain out straight from base toward target.
func (c *Chain) stretch(base, target math.Vec2) {
	dir := target.Sub(base).Normalize()
	pos := base
	for i, l := range c.lengths {
		pos.AddInPlace(dir.Scale(l))
		c.joints[i+1] = pos
	}
}

// forwardReach pins the end effector to target and walks back to the base.
func (c *Chain) forwardReach(target math.Vec2) {
	n := len(c.joints)
	c.joints[n-1] = target

	for i := n - 2; i >= 0; i-- {
		dir := c.joints[i].Sub(c.joints[i+1]).Normalize()
		c.joints[i] = c.joints[i+1].Add(dir.Scale(c.lengths[i]))
	}
}

// backwardReach re-anchors the base and walks out to the end effector.
func (c *Chain) backwardReach(base math.Vec2) {
	c.joints[0] = base

	for i, l := range c.lengths {
		dir := c.joints[i+1].Sub(c.joints[i]).Normalize()
		c.joints[i+1] = c.joints[i].Add(dir.Scale(l))
	}
}
