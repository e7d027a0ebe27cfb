package testing

import (
	"slices"
	"sync"
	"testing"

	"github.com/Alia5/serialpad/pad"
	"github.com/Alia5/serialpad/script"
)

// Write is one recorded transport write. Exactly one of Line and Bytes is set.
type Write struct {
	Line  string
	Bytes []byte
}

// Recorder is a pad.Transport that keeps every write in order.
type Recorder struct {
	mu     sync.Mutex
	writes []Write
	closed bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) WriteLine(row string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.writes = append(r.writes, Write{Line: row})
}

func (r *Recorder) WriteBytes(b []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.writes = append(r.writes, Write{Bytes: slices.Clone(b)})
}

func (r *Recorder) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed
}

// Close makes further writes no-ops, like a port that went away.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.writes)
}

// Lines returns every text line written, including termination lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, w := range r.writes {
		if w.Bytes == nil {
			out = append(out, w.Line)
		}
	}
	return out
}

// FrameRows returns the text rows that carry controller state, skipping the
// termination line.
func (r *Recorder) FrameRows() []string {
	var out []string
	for _, l := range r.Lines() {
		if l != pad.RowEnd {
			out = append(out, l)
		}
	}
	return out
}

// Frames returns every byte frame written.
func (r *Recorder) Frames() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out [][]byte
	for _, w := range r.writes {
		if w.Bytes != nil {
			out = append(out, w.Bytes)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = nil
}

type mockRoutine struct {
	do func(c *script.Commands) error
}

func (m *mockRoutine) Do(c *script.Commands) error {
	return m.do(c)
}

// CreateMockRoutine wraps a function as a routine and registers it under name
// for the duration of the test.
func CreateMockRoutine(
	t *testing.T,
	name string,
	do func(c *script.Commands) error,
) script.Routine {
	r := &mockRoutine{do: do}
	script.Register(name, func() script.Routine { return r })
	t.Cleanup(func() { script.Unregister(name) })
	return r
}
