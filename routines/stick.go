package routines

import (
	"time"

	"github.com/Alia5/serialpad/pad"
	"github.com/Alia5/serialpad/script"
)

// StickSpin rotates a stick through a full turn, then releases it.
type StickSpin struct {
	Stick   pad.Stick
	StepDeg int
	Step    time.Duration
}

func (s *StickSpin) Do(c *script.Commands) error {
	var prev *pad.Direction
	for deg := 0; deg < 360; deg += s.StepDeg {
		d := pad.NewDirection(s.Stick, float64(deg), 1)
		if prev != nil {
			if err := c.HoldEnd(*prev); err != nil {
				return err
			}
		}
		if err := c.HoldFor(s.Step, d); err != nil {
			return err
		}
		prev = &d
	}
	if prev != nil {
		return c.HoldEnd(*prev)
	}
	return nil
}

func (s *StickSpin) Description() string { return "Spin " + s.Stick.String() + " through a full turn" }

func init() {
	script.Register("spin_left_stick", func() script.Routine {
		return &StickSpin{Stick: pad.StickLeft, StepDeg: 15, Step: 50 * time.Millisecond}
	})
	script.Register("spin_right_stick", func() script.Routine {
		return &StickSpin{Stick: pad.StickRight, StepDeg: 15, Step: 50 * time.Millisecond}
	})
}
