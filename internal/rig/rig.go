// Package rig drives a FABRIK chain the way an interactive front-end would:
// the origin follows the viewport, commands edit the chain configuration, and
// every tick solves toward the current target.
package rig

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/fabrik/internal/config"
	"github.com/Faultbox/fabrik/internal/logger"
	"github.com/Faultbox/fabrik/pkg/fabrik"
	"github.com/Faultbox/fabrik/pkg/math"
)

// Frame is the result of one tick.
type Frame struct {
	Tick       int         `yaml:"tick"`
	Target     math.Vec2   `yaml:"target"`
	Origin     math.Vec2   `yaml:"origin"`
	Joints     []math.Vec2 `yaml:"joints"`
	Iterations int         `yaml:"iterations"`
	Reachable  bool        `yaml:"reachable"`
	Residual   float64     `yaml:"residual"`
}

// Rig owns a chain and the interactive state around it. It is not safe for
// concurrent use.
type Rig struct {
	initial  fabrik.ChainConfig
	current  fabrik.ChainConfig
	controls config.ControlsConfig
	viewport config.ViewportConfig

	chain  *fabrik.Chain
	target math.Vec2
	ticks  int
}

// New creates a rig from cfg. The target starts at the viewport center.
func New(cfg *config.Config) *Rig {
	r := &Rig{
		initial:  cfg.Chain,
		current:  cfg.Chain,
		controls: cfg.Controls,
		viewport: cfg.Viewport,
	}
	r.chain = fabrik.New(r.anchor(), r.current)
	r.target = math.V(cfg.Viewport.Width/2, cfg.Viewport.Height/2)
	return r
}

// anchor returns the origin implied by the viewport.
func (r *Rig) anchor() math.Vec2 {
	return math.V(r.viewport.Width*r.viewport.AnchorX, r.viewport.Height*r.viewport.AnchorY)
}

// Chain returns the underlying chain.
func (r *Rig) Chain() *fabrik.Chain {
	return r.chain
}

// ChainConfig returns the current chain configuration.
func (r *Rig) ChainConfig() fabrik.ChainConfig {
	return r.current
}

// Target returns the current target.
func (r *Rig) Target() math.Vec2 {
	return r.target
}

// Ticks returns the number of frames solved so far.
func (r *Rig) Ticks() int {
	return r.ticks
}

// MoveTarget sets the point the chain reaches for on the next tick.
func (r *Rig) MoveTarget(p math.Vec2) {
	r.target = p
}

// Resize updates the viewport and re-anchors the chain origin.
func (r *Rig) Resize(w, h float64) {
	r.viewport.Width = w
	r.viewport.Height = h
	r.chain.SetOrigin(r.anchor())
	logger.Debug("viewport resized",
		zap.Float64("width", w),
		zap.Float64("height", h),
		logger.Vec("origin", r.chain.Origin()))
}

// Apply runs a command and rebuilds the chain when the configuration
// changed. Remove and shorten subtract a full step whenever the value is
// above its minimum, so one step may land below it, but never below zero. At
// or below the minimum they are ignored and reported as false.
func (r *Rig) Apply(c Command) bool {
	next := r.current
	ctl := r.controls

	switch c {
	case CommandAddSegment:
		next.SegmentCount += ctl.CountStep
	case CommandRemoveSegment:
		if next.SegmentCount > ctl.MinSegmentCount {
			next.SegmentCount = max(next.SegmentCount-ctl.CountStep, 0)
		}
	case CommandLengthen:
		next.SegmentLength += ctl.LengthStep
	case CommandShorten:
		if next.SegmentLength > ctl.MinSegmentLength {
			next.SegmentLength = max(next.SegmentLength-ctl.LengthStep, 0)
		}
	case CommandReset:
		next = r.initial
	}

	if c != CommandReset && next == r.current {
		logger.Debug("command ignored", zap.Stringer("command", c))
		return false
	}

	r.current = next
	r.chain.Rebuild(next)
	logger.Debug("chain rebuilt",
		zap.Stringer("command", c),
		zap.Int("segments", next.SegmentCount),
		zap.Float64("segment_length", next.SegmentLength),
		zap.Float64("reach", r.chain.TotalLength()))
	return true
}

// Tick solves toward the current target and returns the resulting frame.
// The frame owns a copy of the joints.
func (r *Rig) Tick() Frame {
	r.chain.Solve(r.target)
	r.ticks++

	f := Frame{
		Tick:       r.ticks,
		Target:     r.target,
		Origin:     r.chain.Origin(),
		Joints:     append([]math.Vec2(nil), r.chain.Joints()...),
		Iterations: r.chain.Iterations(),
		Reachable:  r.chain.Reachable(),
		Residual:   r.chain.Residual(r.target),
	}

	if logger.Enabled(zapcore.DebugLevel) {
		logger.Debug("tick",
			zap.Int("tick", f.Tick),
			logger.Vec("target", f.Target),
			zap.Int("iterations", f.Iterations),
			zap.Bool("reachable", f.Reachable),
			zap.Float64("residual", f.Residual),
			logger.Vecs("joints", f.Joints))
	}
	return f
}

// Handle dispatches an event. It returns a frame and true for tick events.
func (r *Rig) Handle(ev Event) (Frame, bool) {
	switch ev.Type {
	case EventMoveTarget:
		r.MoveTarget(ev.Target)
	case EventResize:
		r.Resize(ev.Width, ev.Height)
	case EventCommand:
		r.Apply(ev.Command)
	case EventTick:
		return r.Tick(), true
	}
	return Frame{}, false
}
