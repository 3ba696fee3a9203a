package trace

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/fabrik/internal/rig"
)

// Recorder writes frames as a stream of YAML documents.
type Recorder struct {
	enc    *yaml.Encoder
	out    io.Closer // nil when the caller owns the writer
	frames int
	closed bool
}

// NewRecorder returns a recorder writing to w. Close must be called to flush.
func NewRecorder(w io.Writer) *Recorder {
	return newRecorder(w, nil)
}

// Create opens path for writing and returns a recorder that owns the file.
func Create(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return newRecorder(f, f), nil
}

func newRecorder(w io.Writer, out io.Closer) *Recorder {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &Recorder{enc: enc, out: out}
}

// Record writes one frame.
func (r *Recorder) Record(f rig.Frame) error {
	if err := r.enc.Encode(f); err != nil {
		return fmt.Errorf("recording frame %d: %w", f.Tick, err)
	}
	r.frames++
	return nil
}

// Frames returns how many frames were recorded.
func (r *Recorder) Frames() int {
	return r.frames
}

// Close flushes the encoder and, for recorders made by Create, closes the
// file. Later calls return nil.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	err := r.enc.Close()
	if r.out != nil {
		if cerr := r.out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// ReadFrames decodes every frame from a recorded stream.
func ReadFrames(rd io.Reader) ([]rig.Frame, error) {
	dec := yaml.NewDecoder(rd)
	var frames []rig.Frame
	for {
		var f rig.Frame
		err := dec.Decode(&f)
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("decoding frame %d: %w", len(frames)+1, err)
		}
		frames = append(frames, f)
	}
}
