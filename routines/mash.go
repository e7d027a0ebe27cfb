package routines

import (
	"time"

	"github.com/Alia5/serialpad/pad"
	"github.com/Alia5/serialpad/script"
)

// MashA presses A until stopped.
type MashA struct {
	Interval time.Duration
}

func (m *MashA) Do(c *script.Commands) error {
	for {
		if err := c.PressFor(script.DefaultPressDuration, m.Interval, pad.ButtonA); err != nil {
			return err
		}
	}
}

func (m *MashA) Description() string { return "Mash A until stopped" }

func init() {
	script.Register("mash_a", func() script.Routine {
		return &MashA{Interval: 100 * time.Millisecond}
	})
}
