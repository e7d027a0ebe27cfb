package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Alia5/serialpad/pad"
)

// RawLogger records every frame sent to the controller.
type RawLogger interface {
	Row(row string)
	Frame(data []byte)
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw returns a RawLogger writing to w. A nil writer discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Row logs a text row followed by its decoded meaning when it parses.
func (r *rawLogger) Row(row string) {
	if r.w == nil {
		return
	}
	desc := ""
	if row != pad.RowEnd {
		if parsed, err := pad.ParseRow(row); err == nil {
			desc = " (" + parsed.Describe() + ")"
		}
	}
	r.write(fmt.Sprintf("TX row: %s%s", row, desc))
}

// Frame logs a byte frame as spaced hex.
func (r *rawLogger) Frame(data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}
	r.write(fmt.Sprintf("TX frame: %d bytes, hex: % x", len(data), data))
}

func (r *rawLogger) write(msg string) {
	line := time.Now().Format("2006/01/02 15:04:05.000") + " " + msg + "\n"
	r.mu.Lock()
	_, _ = io.WriteString(r.w, line)
	r.mu.Unlock()
}
