// Package config handles loading and validating the fabrik driver settings.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/fabrik/pkg/fabrik"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all driver settings.
type Config struct {
	Chain    fabrik.ChainConfig `yaml:"chain"`
	Viewport ViewportConfig     `yaml:"viewport"`
	Controls ControlsConfig     `yaml:"controls"`
	Run      RunConfig          `yaml:"run"`
	Logging  LoggingConfig      `yaml:"logging"`
}

// ViewportConfig describes the virtual canvas the chain is anchored in.
// The origin sits at (Width*AnchorX, Height*AnchorY).
type ViewportConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	AnchorX float64 `yaml:"anchor_x"`
	AnchorY float64 `yaml:"anchor_y"`
}

// ControlsConfig holds the step sizes and lower bounds for interactive
// chain edits.
type ControlsConfig struct {
	CountStep        int     `yaml:"count_step"`
	MinSegmentCount  int     `yaml:"min_segment_count"`
	LengthStep       float64 `yaml:"length_step"`
	MinSegmentLength float64 `yaml:"min_segment_length"`
}

// RunConfig controls what the CLI plays through the rig.
type RunConfig struct {
	Script      string  `yaml:"script"`       // YAML step script; empty runs a sweep
	Record      string  `yaml:"record"`       // frame trace output path
	SweepTicks  int     `yaml:"sweep_ticks"`  // ticks in a generated sweep
	SweepRadius float64 `yaml:"sweep_radius"` // 0 picks 75% of the chain reach
	SaveConfig  string  `yaml:"-"`            // write the merged config here before running
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Chain: fabrik.DefaultChainConfig(),
		Viewport: ViewportConfig{
			Width:   1024,
			Height:  768,
			AnchorX: 0.5,
			AnchorY: 0.75,
		},
		Controls: ControlsConfig{
			CountStep:        1,
			MinSegmentCount:  1,
			LengthStep:       5,
			MinSegmentLength: 10,
		},
		Run: RunConfig{
			SweepTicks: 120,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every problem with the config at once. The solver itself
// accepts any values; this is the boundary where nonsense is rejected.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Chain.SegmentCount >= 0, "chain.segment_count %d is negative", c.Chain.SegmentCount)
	check(c.Chain.SegmentLength > 0, "chain.segment_length %g must be positive", c.Chain.SegmentLength)
	check(c.Chain.Tolerance >= 0, "chain.tolerance %g is negative", c.Chain.Tolerance)
	check(c.Chain.MaxIterations > 0, "chain.max_iterations %d must be positive", c.Chain.MaxIterations)

	check(c.Viewport.Width > 0 && c.Viewport.Height > 0,
		"viewport %gx%g must have positive size", c.Viewport.Width, c.Viewport.Height)
	check(c.Viewport.AnchorX >= 0 && c.Viewport.AnchorX <= 1, "viewport.anchor_x %g outside [0, 1]", c.Viewport.AnchorX)
	check(c.Viewport.AnchorY >= 0 && c.Viewport.AnchorY <= 1, "viewport.anchor_y %g outside [0, 1]", c.Viewport.AnchorY)

	check(c.Controls.CountStep > 0, "controls.count_step %d must be positive", c.Controls.CountStep)
	check(c.Controls.MinSegmentCount >= 0, "controls.min_segment_count %d is negative", c.Controls.MinSegmentCount)
	check(c.Controls.LengthStep > 0, "controls.length_step %g must be positive", c.Controls.LengthStep)
	check(c.Controls.MinSegmentLength >= 0, "controls.min_segment_length %g is negative", c.Controls.MinSegmentLength)

	check(c.Run.SweepTicks >= 0, "run.sweep_ticks %d is negative", c.Run.SweepTicks)
	check(c.Run.SweepRadius >= 0, "run.sweep_radius %g is negative", c.Run.SweepRadius)

	return err
}
