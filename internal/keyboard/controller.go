package keyboard

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Alia5/serialpad/pad"
)

const (
	KeyCtrlC rune = 0x03
	KeyEsc   rune = 0x1b
)

// Controller turns key presses into momentary presses on a KeyPress.
type Controller struct {
	keys     *pad.KeyPress
	bindings Bindings
	logger   *slog.Logger

	// Busy, when set, disables key input while it returns true.
	Busy func() bool
	// Special keys are handled by these callbacks before the bindings.
	Special map[rune]func()
	// PressDuration is how long each key press is held.
	PressDuration time.Duration
}

func NewController(keys *pad.KeyPress, bindings Bindings, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		keys:          keys,
		bindings:      bindings,
		logger:        logger,
		PressDuration: 100 * time.Millisecond,
	}
}

// Handle processes one key and reports whether it was used.
func (c *Controller) Handle(r rune) bool {
	if f, ok := c.Special[r]; ok {
		f()
		return true
	}
	in, ok := c.bindings[r]
	if !ok {
		return false
	}
	if c.Busy != nil && c.Busy() {
		c.logger.Debug("key ignored while a routine is running", "key", string(r))
		return false
	}
	c.logger.Debug("key press", "key", string(r), "input", in.String())
	c.keys.Input(in)
	time.Sleep(c.PressDuration)
	c.keys.InputEnd(in)
	return true
}

// Run handles keys from in until ctx is done or Esc or Ctrl-C is read.
func (c *Controller) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := ReadKeys(ctx, in)
	for {
		select {
		case <-ctx.Done():
			return nil
		case r, ok := <-keys:
			if !ok || r == KeyEsc || r == KeyCtrlC {
				return nil
			}
			c.Handle(r)
		}
	}
}
