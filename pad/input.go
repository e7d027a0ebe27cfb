package pad

import (
	"fmt"
	"math"
	"strings"
)

// Button is a set of button flags. A single value may carry several buttons.
type Button uint16

// Hat is a d-pad position, 0..8 with 8 meaning centered.
type Hat uint8

// Stick identifies an analog stick.
type Stick uint8

// Tilt is the qualitative direction a stick is pushed in. It decides which
// axis is returned to center when a Direction is released.
type Tilt uint8

// Kind discriminates the variants an Input can hold.
type Kind uint8

const (
	KindButton Kind = iota + 1
	KindHat
	KindStick
	KindDirection
	KindTouch
)

// Input is one element of a press/hold/release request.
// Only the field matching Kind is meaningful.
type Input struct {
	Kind      Kind
	Button    Button
	Hat       Hat
	Stick     Stick
	Direction Direction
	Touch     Touch
}

// Inputter is implemented by every value that can be pressed.
type Inputter interface {
	Input() Input
}

func (i Input) Input() Input     { return i }
func (b Button) Input() Input    { return Input{Kind: KindButton, Button: b} }
func (h Hat) Input() Input       { return Input{Kind: KindHat, Hat: h} }
func (s Stick) Input() Input     { return Input{Kind: KindStick, Stick: s} }
func (d Direction) Input() Input { return Input{Kind: KindDirection, Direction: d} }
func (t Touch) Input() Input     { return Input{Kind: KindTouch, Touch: t} }

// Inputs flattens a list of Inputters into tagged Inputs.
func Inputs(in ...Inputter) []Input {
	out := make([]Input, 0, len(in))
	for _, i := range in {
		if i == nil {
			continue
		}
		out = append(out, i.Input())
	}
	return out
}

func (i Input) String() string {
	switch i.Kind {
	case KindButton:
		return i.Button.String()
	case KindHat:
		return i.Hat.String()
	case KindStick:
		return i.Stick.String()
	case KindDirection:
		return i.Direction.String()
	case KindTouch:
		return i.Touch.String()
	default:
		return "Input(invalid)"
	}
}

var buttonNames = []struct {
	b    Button
	name string
}{
	{ButtonY, "Y"},
	{ButtonB, "B"},
	{ButtonA, "A"},
	{ButtonX, "X"},
	{ButtonL, "L"},
	{ButtonR, "R"},
	{ButtonZL, "ZL"},
	{ButtonZR, "ZR"},
	{ButtonMinus, "MINUS"},
	{ButtonPlus, "PLUS"},
	{ButtonLClick, "LCLICK"},
	{ButtonRClick, "RCLICK"},
	{ButtonHome, "HOME"},
	{ButtonCapture, "CAPTURE"},
}

var buttonAliases = map[string]Button{
	"SELECT":   ButtonSelect,
	"START":    ButtonStart,
	"POWER":    ButtonPower,
	"WIRELESS": ButtonWireless,
}

func (b Button) String() string {
	if b == 0 {
		return "Button(none)"
	}
	var parts []string
	for _, n := range buttonNames {
		if b&n.b != 0 {
			parts = append(parts, n.name)
		}
	}
	if rest := b &^ ButtonMask; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%04x", uint16(rest)))
	}
	return "Button." + strings.Join(parts, "|")
}

// Each returns the individual flags set in b, lowest bit first.
func (b Button) Each() []Button {
	var out []Button
	for bit := Button(1); bit != 0; bit <<= 1 {
		if b&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}

var hatNames = [...]string{"TOP", "TOP_RIGHT", "RIGHT", "BTM_RIGHT", "BTM", "BTM_LEFT", "LEFT", "TOP_LEFT", "CENTER"}

func (h Hat) String() string {
	if int(h) < len(hatNames) {
		return "Hat." + hatNames[h]
	}
	return fmt.Sprintf("Hat(%d)", uint8(h))
}

func (s Stick) String() string {
	switch s {
	case StickLeft:
		return "Stick.LEFT"
	case StickRight:
		return "Stick.RIGHT"
	default:
		return fmt.Sprintf("Stick(%d)", uint8(s))
	}
}

func (t Tilt) String() string {
	switch t {
	case TiltUp:
		return "UP"
	case TiltRight:
		return "RIGHT"
	case TiltDown:
		return "DOWN"
	case TiltLeft:
		return "LEFT"
	case TiltRUp:
		return "R_UP"
	case TiltRRight:
		return "R_RIGHT"
	case TiltRDown:
		return "R_DOWN"
	case TiltRLeft:
		return "R_LEFT"
	default:
		return fmt.Sprintf("Tilt(%d)", uint8(t))
	}
}

// Direction is a stick position in device units (0..255, 128 = center).
// Y grows upwards; it is inverted when written into a frame.
type Direction struct {
	Stick Stick
	X, Y  uint8
}

// NewDirection computes a stick position from a polar angle in degrees and a
// magnitude, clamped to 0..1. Both axes are rounded, so a horizontal push
// (0 or 180 degrees) lands on Y=128, one unit above the 127 center, and is
// written as 7f rather than 80.
func NewDirection(stick Stick, degrees, magnitude float64) Direction {
	return NewDirectionRadians(stick, degrees*math.Pi/180, magnitude)
}

// NewDirectionRadians is NewDirection with the angle in radians.
func NewDirectionRadians(stick Stick, rad, magnitude float64) Direction {
	mag := math.Max(0, math.Min(1, magnitude))
	return Direction{
		Stick: stick,
		X:     axisValue(math.Cos(rad) * mag),
		Y:     axisValue(math.Sin(rad) * mag),
	}
}

// NewDirectionXY builds a Direction from explicit device coordinates.
func NewDirectionXY(stick Stick, x, y uint8) Direction {
	return Direction{Stick: stick, X: x, Y: y}
}

func axisValue(unit float64) uint8 {
	v := math.Round(127.5*unit + 127.5)
	return uint8(math.Max(0, math.Min(255, v)))
}

// Tilting derives the tilt symbols implied by the position. X splits at 128
// and Y at 127; the asymmetry is relied on by the release logic.
func (d Direction) Tilting() []Tilt {
	var up, right, down, left Tilt
	switch d.Stick {
	case StickLeft:
		up, right, down, left = TiltUp, TiltRight, TiltDown, TiltLeft
	case StickRight:
		up, right, down, left = TiltRUp, TiltRRight, TiltRDown, TiltRLeft
	default:
		return nil
	}

	var tilts []Tilt
	if d.X < AxisCenter {
		tilts = append(tilts, left)
	} else if d.X > AxisCenter {
		tilts = append(tilts, right)
	}
	if d.Y < AxisCenter-1 {
		tilts = append(tilts, down)
	} else if d.Y > AxisCenter-1 {
		tilts = append(tilts, up)
	}
	return tilts
}

// Angle returns the direction's angle in degrees, measured from the right.
func (d Direction) Angle() float64 {
	return math.Atan2(float64(d.Y)-127.5, float64(d.X)-127.5) * 180 / math.Pi
}

func (d Direction) String() string {
	return fmt.Sprintf("<%s, (%d, %d)>", d.Stick, d.X, d.Y)
}

// Preset stick directions.
var (
	DirUp        = NewDirection(StickLeft, 90, 1)
	DirRight     = NewDirection(StickLeft, 0, 1)
	DirDown      = NewDirection(StickLeft, -90, 1)
	DirLeft      = NewDirection(StickLeft, -180, 1)
	DirUpRight   = NewDirection(StickLeft, 45, 1)
	DirDownRight = NewDirection(StickLeft, -45, 1)
	DirDownLeft  = NewDirection(StickLeft, -135, 1)
	DirUpLeft    = NewDirection(StickLeft, 135, 1)

	DirRUp        = NewDirection(StickRight, 90, 1)
	DirRRight     = NewDirection(StickRight, 0, 1)
	DirRDown      = NewDirection(StickRight, -90, 1)
	DirRLeft      = NewDirection(StickRight, -180, 1)
	DirRUpRight   = NewDirection(StickRight, 45, 1)
	DirRDownRight = NewDirection(StickRight, -45, 1)
	DirRDownLeft  = NewDirection(StickRight, -135, 1)
	DirRUpLeft    = NewDirection(StickRight, 135, 1)
)

// Touch is a point on the touch panel.
type Touch struct {
	X uint16
	Y uint8
}

// NewTouch clamps the coordinates into the touch panel space.
func NewTouch(x, y int) Touch {
	x = max(0, min(x, int(TouchWidth)))
	y = max(0, min(y, int(TouchHeight)))
	return Touch{X: uint16(x), Y: uint8(y)}
}

func (t Touch) String() string {
	return fmt.Sprintf("Touch(%d, %d)", t.X, t.Y)
}

var directionNames = map[string]Direction{
	"UP":           DirUp,
	"RIGHT":        DirRight,
	"DOWN":         DirDown,
	"LEFT":         DirLeft,
	"UP_RIGHT":     DirUpRight,
	"DOWN_RIGHT":   DirDownRight,
	"DOWN_LEFT":    DirDownLeft,
	"UP_LEFT":      DirUpLeft,
	"R_UP":         DirRUp,
	"R_RIGHT":      DirRRight,
	"R_DOWN":       DirRDown,
	"R_LEFT":       DirRLeft,
	"R_UP_RIGHT":   DirRUpRight,
	"R_DOWN_RIGHT": DirRDownRight,
	"R_DOWN_LEFT":  DirRDownLeft,
	"R_UP_LEFT":    DirRUpLeft,
}

// ParseInput resolves a case-insensitive input name. Buttons use their plain
// names ("A", "ZL", "START"), hats are prefixed with "HAT_" ("HAT_TOP") and
// stick presets use the direction name ("UP_LEFT", "R_DOWN").
func ParseInput(name string) (Input, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return Input{}, fmt.Errorf("empty input name")
	}
	for _, b := range buttonNames {
		if b.name == n {
			return b.b.Input(), nil
		}
	}
	if b, ok := buttonAliases[n]; ok {
		return b.Input(), nil
	}
	if h, ok := strings.CutPrefix(n, "HAT_"); ok {
		for i, hn := range hatNames {
			if hn == h {
				return Hat(i).Input(), nil
			}
		}
	}
	if d, ok := directionNames[n]; ok {
		return d.Input(), nil
	}
	return Input{}, fmt.Errorf("unknown input %q", name)
}
