package trace

import (
	gomath "math"

	"github.com/Faultbox/fabrik/internal/rig"
	"github.com/Faultbox/fabrik/pkg/math"
)

// Sweep returns events that move the target once around a circle, solving a
// tick at each of the evenly spaced points.
func Sweep(center math.Vec2, radius float64, ticks int) []rig.Event {
	events := make([]rig.Event, 0, 2*max(ticks, 0))
	for i := range ticks {
		angle := 2 * gomath.Pi * float64(i) / float64(ticks)
		p := center.Add(math.V(gomath.Cos(angle), gomath.Sin(angle)).Scale(radius))
		events = append(events, rig.MoveTo(p), rig.Tick())
	}
	return events
}
