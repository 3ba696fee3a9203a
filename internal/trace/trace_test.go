package trace

import (
	"bytes"
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/fabrik/internal/config"
	"github.com/Faultbox/fabrik/internal/rig"
	"github.com/Faultbox/fabrik/pkg/math"
)

const sampleScript = `
steps:
  - resize: [800, 600]
    target: [400, 300]
  - command: add_segment
    target: [450, 350]
    repeat: 3
  - command: reset
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	if len(s.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(s.Steps))
	}
	if s.Steps[0].Resize == nil || *s.Steps[0].Resize != [2]float64{800, 600} {
		t.Errorf("unexpected resize: %v", s.Steps[0].Resize)
	}
	if s.Steps[1].Repeat != 3 || s.Steps[1].Command != "add_segment" {
		t.Errorf("unexpected step 1: %+v", s.Steps[1])
	}
	if s.Steps[2].Target != nil {
		t.Errorf("expected no target on step 2, got %v", *s.Steps[2].Target)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		unknown bool
	}{
		{"unknown command", "steps:\n  - command: explode\n", true},
		{"negative repeat", "steps:\n  - repeat: -2\n", false},
		{"not yaml", "steps: [\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.script))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrUnknownCommand); got != tt.unknown {
				t.Errorf("errors.Is(ErrUnknownCommand) = %v, want %v (%v)", got, tt.unknown, err)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yaml")
	if err := os.WriteFile(path, []byte(sampleScript), 0644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	if _, err := LoadScript(path); err != nil {
		t.Errorf("LoadScript failed: %v", err)
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing script")
	}
}

func TestScriptEvents(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	want := []rig.Event{
		rig.Resize(800, 600),
		rig.MoveTo(math.V(400, 300)),
		rig.Tick(),
		rig.Do(rig.CommandAddSegment),
		rig.MoveTo(math.V(450, 350)),
		rig.Tick(),
		rig.Tick(),
		rig.Tick(),
		rig.Do(rig.CommandReset),
		rig.Tick(),
	}
	if diff := cmp.Diff(want, s.Events()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSweep(t *testing.T) {
	center := math.V(100, 100)
	events := Sweep(center, 50, 8)

	if len(events) != 16 {
		t.Fatalf("expected 16 events, got %d", len(events))
	}
	for i := 0; i < len(events); i += 2 {
		if events[i].Type != rig.EventMoveTarget || events[i+1].Type != rig.EventTick {
			t.Fatalf("events %d/%d are not move+tick", i, i+1)
		}
		if d := events[i].Target.Distance(center); gomath.Abs(d-50) > 1e-9 {
			t.Errorf("point %d at distance %f, want 50", i/2, d)
		}
	}
	if first := events[0].Target; first != math.V(150, 100) {
		t.Errorf("expected sweep to start at (150, 100), got %v", first)
	}
	if len(Sweep(center, 50, 0)) != 0 {
		t.Error("expected no events for zero ticks")
	}
}

func TestRecorderStream(t *testing.T) {
	r := rig.New(config.Default())

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	var want []rig.Frame
	for _, ev := range Sweep(math.V(512, 400), 120, 4) {
		if f, ok := r.Handle(ev); ok {
			want = append(want, f)
			if err := rec.Record(f); err != nil {
				t.Fatalf("Record failed: %v", err)
			}
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if rec.Frames() != 4 {
		t.Errorf("expected 4 frames recorded, got %d", rec.Frames())
	}
	if n := strings.Count(buf.String(), "tick:"); n != 4 {
		t.Errorf("expected 4 documents in stream, got %d", n)
	}

	got, err := ReadFrames(&buf)
	if err != nil {
		t.Fatalf("ReadFrames failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded frames differ (-want +got):\n%s", diff)
	}
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestRecorderCloseReportsWriterError(t *testing.T) {
	errDisk := errors.New("disk full")
	var buf bytes.Buffer
	rec := newRecorder(&buf, failingCloser{err: errDisk})

	if err := rec.Record(rig.Frame{Tick: 1}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := rec.Close(); !errors.Is(err, errDisk) {
		t.Errorf("expected close error %v, got %v", errDisk, err)
	}
	if err := rec.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.yaml")
	rec, err := Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := rec.Record(rig.Frame{Tick: 1, Reachable: true}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("trace not written: %v", err)
	}
	defer f.Close()
	frames, err := ReadFrames(f)
	if err != nil || len(frames) != 1 || frames[0].Tick != 1 {
		t.Errorf("unexpected frames %+v (err %v)", frames, err)
	}

	if _, err := Create(filepath.Join(t.TempDir(), "missing", "frames.yaml")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestReadFramesInvalid(t *testing.T) {
	_, err := ReadFrames(strings.NewReader("tick: [oops\n"))
	if err == nil {
		t.Error("expected decode error")
	}
}
