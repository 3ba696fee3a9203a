// Package fabrik implements a 2D FABRIK (Forward And Backward Reaching
// Inverse Kinematics) solver for a single chain of rigid segments.
//
// A Chain is anchored at an origin and owns its joint positions. Each call to
// Solve moves the joints so that the end effector approaches a target while
// every segment keeps its length. Chains are not safe for concurrent use.
package fabrik

// ChainConfig describes a chain of uniform segments and its solver limits.
type ChainConfig struct {
	SegmentCount  int     `yaml:"segment_count"`
	SegmentLength float64 `yaml:"segment_length"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

// Default chain settings.
const (
	DefaultSegmentCount  = 8
	DefaultSegmentLength = 50.0
	DefaultTolerance     = 0.5
	DefaultMaxIterations = 10
)

// DefaultChainConfig returns the default chain settings.
func DefaultChainConfig() ChainConfig {
	return ChainConfig{
		SegmentCount:  DefaultSegmentCount,
		SegmentLength: DefaultSegmentLength,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Lengths expands the config into one length per segment.
func (c ChainConfig) Lengths() []float64 {
	n := max(c.SegmentCount, 0)
	lengths := make([]float64, n)
	for i := range lengths {
		lengths[i] = c.SegmentLength
	}
	return lengths
}
