package rig

import "github.com/Faultbox/fabrik/pkg/math"

// EventType identifies what an Event carries.
type EventType int

const (
	EventNone EventType = iota
	EventMoveTarget
	EventResize
	EventCommand
	EventTick
)

// Command is an interactive edit of the chain configuration.
type Command int

const (
	CommandNone Command = iota
	CommandAddSegment
	CommandRemoveSegment
	CommandLengthen
	CommandShorten
	CommandReset
)

var commandNames = map[Command]string{
	CommandAddSegment:    "add_segment",
	CommandRemoveSegment: "remove_segment",
	CommandLengthen:      "lengthen",
	CommandShorten:       "shorten",
	CommandReset:         "reset",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "none"
}

// ParseCommand maps a command name such as "add_segment" to its Command.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return CommandNone, false
}

// Event is a single input to a Rig.
type Event struct {
	Type    EventType
	Command Command
	Target  math.Vec2
	Width   float64
	Height  float64
}

// MoveTo returns an event that moves the target.
func MoveTo(p math.Vec2) Event {
	return Event{Type: EventMoveTarget, Target: p}
}

// Resize returns an event that resizes the viewport.
func Resize(w, h float64) Event {
	return Event{Type: EventResize, Width: w, Height: h}
}

// Do returns an event that applies a command.
func Do(c Command) Event {
	return Event{Type: EventCommand, Command: c}
}

// Tick returns an event that solves one frame.
func Tick() Event {
	return Event{Type: EventTick}
}
