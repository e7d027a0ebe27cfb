package transport

import (
	"fmt"
	"io"
	"sync"

	"github.com/Alia5/serialpad/pad"
)

// Writer prints frames to an io.Writer, one per line. Byte frames are printed
// as spaced hex. It is used for dry runs.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

var _ pad.Transport = (*Writer)(nil)

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (t *Writer) WriteLine(row string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.w, row)
}

func (t *Writer) WriteBytes(b []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.w, "% x\n", b)
}

func (t *Writer) IsOpen() bool { return true }
