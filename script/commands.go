package script

import (
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/Alia5/serialpad/pad"
)

// Commands is the set of primitives a routine drives the controller with.
// Each primitive performs its effect and then passes a checkpoint; once the
// run is stopped every primitive returns ErrStopped without side effects.
type Commands struct {
	e *Engine
	r *run
}

func (c *Commands) Logger() *slog.Logger { return c.e.logger }

// Keys exposes the underlying orchestrator for inputs the primitives do not
// cover. Frames written through it bypass checkpoints. It is nil once the run
// has been released.
func (c *Commands) Keys() *pad.KeyPress {
	if c.r.released.Load() {
		return nil
	}
	return c.r.keys
}

// Press presses the inputs for DefaultPressDuration, then waits DefaultPressWait.
func (c *Commands) Press(in ...pad.Inputter) error {
	return c.PressFor(DefaultPressDuration, DefaultPressWait, in...)
}

// PressFor presses the inputs for duration, releases them and waits.
func (c *Commands) PressFor(duration, wait time.Duration, in ...pad.Inputter) error {
	if err := c.ready(); err != nil {
		return err
	}
	c.r.keys.Input(in...)
	if err := c.Wait(duration); err != nil {
		return err
	}
	c.r.keys.InputEnd(in...)
	if err := c.Wait(wait); err != nil {
		return err
	}
	return c.checkpoint()
}

// PressRep presses the inputs repeat times with interval between presses and
// waits once after the last one.
func (c *Commands) PressRep(repeat int, duration, interval, wait time.Duration, in ...pad.Inputter) error {
	for i := range repeat {
		gap := interval
		if i == repeat-1 {
			gap = 0
		}
		if err := c.PressFor(duration, gap, in...); err != nil {
			return err
		}
	}
	return c.Wait(wait)
}

// Hold keeps the inputs pressed until HoldEnd, then waits DefaultPressWait.
func (c *Commands) Hold(in ...pad.Inputter) error {
	return c.HoldFor(DefaultPressWait, in...)
}

// HoldFor is Hold with an explicit wait after the inputs are pressed.
func (c *Commands) HoldFor(wait time.Duration, in ...pad.Inputter) error {
	if err := c.ready(); err != nil {
		return err
	}
	c.r.keys.Hold(in...)
	if err := c.Wait(wait); err != nil {
		return err
	}
	return c.checkpoint()
}

func (c *Commands) HoldEnd(in ...pad.Inputter) error {
	if err := c.ready(); err != nil {
		return err
	}
	c.r.keys.HoldEnd(in...)
	return c.checkpoint()
}

// Wait sleeps for d. Durations at or below the configured short-wait
// threshold are spun for accuracy. The wait itself cannot be interrupted.
func (c *Commands) Wait(d time.Duration) error {
	if err := c.ready(); err != nil {
		return err
	}
	if d > c.e.cfg.ShortWait {
		time.Sleep(d)
	} else {
		spin(d)
	}
	return c.checkpoint()
}

// ShortWait always spins, regardless of d.
func (c *Commands) ShortWait(d time.Duration) error {
	if err := c.ready(); err != nil {
		return err
	}
	spin(d)
	return c.checkpoint()
}

// Finish ends the run from inside the routine. It always returns ErrStopped.
func (c *Commands) Finish() error {
	c.r.stopReq.Store(true)
	return c.alive()
}

// DirectSerial writes raw rows, sleeping waits[i] before rows[i]. Extra
// entries in either slice are ignored.
func (c *Commands) DirectSerial(rows []string, waits []time.Duration) error {
	if err := c.ready(); err != nil {
		return err
	}
	n := min(len(rows), len(waits))
	for i := range n {
		time.Sleep(waits[i])
		row := strings.NewReplacer("\r", "", "\n", "").Replace(rows[i])
		c.r.keys.WriteRaw(row)
	}
	return c.checkpoint()
}

// Checkpoint lets long-running routine code observe pause and stop requests
// between primitives.
func (c *Commands) Checkpoint() error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.checkpoint()
}

func (c *Commands) ready() error {
	if c.r.released.Load() {
		return ErrStopped
	}
	return nil
}

func (c *Commands) checkpoint() error {
	if c.e.paused.Load() {
		c.e.logger.Info("Command paused")
		for c.e.paused.Load() {
			time.Sleep(c.e.cfg.PollInterval)
			if err := c.alive(); err != nil {
				return err
			}
		}
		c.e.logger.Info("Command resumed")
	}
	return c.alive()
}

// alive ends the run if a stop has been requested.
func (c *Commands) alive() error {
	if c.r.released.Load() {
		return ErrStopped
	}
	if !c.r.stopReq.Load() {
		return nil
	}
	c.e.release(c.r)
	c.e.logger.Info("Exit from command successfully")
	return ErrStopped
}

func spin(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		runtime.Gosched()
	}
}
