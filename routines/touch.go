package routines

import (
	"math"
	"time"

	"github.com/Alia5/serialpad/pad"
	"github.com/Alia5/serialpad/script"
)

// TouchCircle traces a circle on the touch panel. Only the qingpi format
// carries touch input.
type TouchCircle struct {
	CenterX, CenterY int
	Radius           float64
	StepDeg          int
	Step             time.Duration
}

func (t *TouchCircle) Do(c *script.Commands) error {
	for deg := 0; deg < 360; deg += t.StepDeg {
		w := float64(deg) * math.Pi / 180
		x := int(t.Radius*math.Cos(w)) + t.CenterX
		y := int(t.Radius*math.Sin(w)) + t.CenterY
		if err := c.HoldFor(t.Step, pad.NewTouch(x, y)); err != nil {
			return err
		}
	}
	if err := c.HoldEnd(pad.NewTouch(0, 0)); err != nil {
		return err
	}
	return c.Finish()
}

func (t *TouchCircle) Description() string { return "Trace a circle on the touch panel" }

func init() {
	script.Register("touch_circle", func() script.Routine {
		return &TouchCircle{CenterX: 160, CenterY: 120, Radius: 50, StepDeg: 3, Step: 100 * time.Millisecond}
	})
}
