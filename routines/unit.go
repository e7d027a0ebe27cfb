// Package routines holds the built-in routines. Each registers itself with
// the script registry from init.
package routines

import (
	"strings"

	"github.com/Alia5/serialpad/pad"
	"github.com/Alia5/serialpad/script"
)

// unitInputs are the inputs that get a one-shot press routine.
var unitInputs = []string{
	"A", "B", "X", "Y", "L", "R", "ZL", "ZR",
	"MINUS", "PLUS", "LCLICK", "RCLICK", "HOME", "CAPTURE",
	"HAT_TOP", "HAT_TOP_RIGHT", "HAT_RIGHT", "HAT_BTM_RIGHT",
	"HAT_BTM", "HAT_BTM_LEFT", "HAT_LEFT", "HAT_TOP_LEFT",
}

// Unit presses a single input once.
type Unit struct {
	In pad.Input
}

func (u *Unit) Do(c *script.Commands) error {
	return c.Press(u.In)
}

func (u *Unit) Description() string {
	return "Press " + u.In.String() + " once"
}

func init() {
	for _, name := range unitInputs {
		in, err := pad.ParseInput(name)
		if err != nil {
			panic(err)
		}
		script.Register("press_"+strings.ToLower(name), func() script.Routine {
			return &Unit{In: in}
		})
	}
}
