// Package trace reads step scripts for a rig and records the frames it
// produces, both as YAML.
package trace

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/fabrik/internal/rig"
	"github.com/Faultbox/fabrik/pkg/math"
)

// ErrUnknownCommand is returned for a step naming a command the rig lacks.
var ErrUnknownCommand = errors.New("unknown command")

// Script is an ordered list of steps.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step changes the rig and then solves Repeat ticks (at least one).
// Within a step the resize runs first, then the command, then the target move.
type Step struct {
	Target  *[2]float64 `yaml:"target,omitempty"`
	Resize  *[2]float64 `yaml:"resize,omitempty"`
	Command string      `yaml:"command,omitempty"`
	Repeat  int         `yaml:"repeat,omitempty"`
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes and checks a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, st := range s.Steps {
		if st.Command != "" {
			if _, ok := rig.ParseCommand(st.Command); !ok {
				return nil, fmt.Errorf("step %d: %w %q", i, ErrUnknownCommand, st.Command)
			}
		}
		if st.Repeat < 0 {
			return nil, fmt.Errorf("step %d: negative repeat %d", i, st.Repeat)
		}
	}
	return &s, nil
}

// Events expands the script into rig events.
func (s *Script) Events() []rig.Event {
	var events []rig.Event
	for _, st := range s.Steps {
		if st.Resize != nil {
			events = append(events, rig.Resize(st.Resize[0], st.Resize[1]))
		}
		if st.Command != "" {
			c, _ := rig.ParseCommand(st.Command)
			events = append(events, rig.Do(c))
		}
		if st.Target != nil {
			events = append(events, rig.MoveTo(math.V(st.Target[0], st.Target[1])))
		}
		for range max(st.Repeat, 1) {
			events = append(events, rig.Tick())
		}
	}
	return events
}
