package pad

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ButtonMap translates individual button flags into device bits. A nil map is
// the identity mapping; a flag missing from a non-nil map is unsupported by the
// device and maps to 0.
type ButtonMap map[Button]uint16

func (m ButtonMap) bits(b Button) uint16 {
	if m == nil {
		return uint16(b)
	}
	var out uint16
	for _, bit := range b.Each() {
		out |= m[bit]
	}
	return out
}

// HatMap translates a hat position into the value a device expects.
type HatMap [9]uint8

func (m HatMap) value(h Hat) uint8 {
	if int(h) >= len(m) {
		return m[HatCenter]
	}
	return m[h]
}

var DefaultHatMap = HatMap{0, 1, 2, 3, 4, 5, 6, 7, 8}

// ThreeDSButtonMap is the bit layout of the 3DS controller adapter.
var ThreeDSButtonMap = ButtonMap{
	ButtonA:       1,
	ButtonB:       2,
	ButtonX:       4,
	ButtonY:       8,
	ButtonL:       16,
	ButtonR:       32,
	ButtonHome:    64,
	ButtonPlus:    128,
	ButtonMinus:   256,
	ButtonLClick:  512,
	ButtonRClick:  0,
	ButtonZL:      0,
	ButtonZR:      0,
	ButtonCapture: 0,
}

// ThreeDSHatMap folds the 8-way hat into the adapter's 4-bit d-pad.
// Diagonals are not representable and map to 0.
var ThreeDSHatMap = HatMap{8, 0, 4, 0, 2, 0, 1, 0, 0}

// FrameState is what the virtual gamepad is doing right now.
// Stick values are stored as emitted, i.e. with Y already inverted.
type FrameState struct {
	Buttons uint16
	Hat     uint8
	LX, LY  uint8
	RX, RY  uint8
	TouchX  uint16
	TouchY  uint8

	// LeftChanged and RightChanged mark a stick as changed since the last
	// text row was produced.
	LeftChanged  bool
	RightChanged bool

	hatPos uint8
}

// NewFrameState returns a neutral frame.
func NewFrameState() *FrameState {
	return &FrameState{
		Hat:    uint8(HatCenter),
		hatPos: uint8(HatCenter),
		LX:     AxisCenter,
		LY:     AxisCenter,
		RX:     AxisCenter,
		RY:     AxisCenter,
	}
}

// IsNeutral reports whether no button, hat, stick or touch input is active.
// Dirty flags are ignored.
func (s *FrameState) IsNeutral() bool {
	return s.Buttons == 0 &&
		s.Hat == uint8(HatCenter) &&
		s.LX == AxisCenter && s.LY == AxisCenter &&
		s.RX == AxisCenter && s.RY == AxisCenter &&
		s.TouchX == 0 && s.TouchY == 0
}

func (s *FrameState) SetButton(btns []Button, m ButtonMap) {
	for _, b := range btns {
		s.Buttons |= m.bits(b)
	}
}

func (s *FrameState) UnsetButton(btns []Button, m ButtonMap) {
	for _, b := range btns {
		s.Buttons &^= m.bits(b)
	}
}

func (s *FrameState) ResetAllButtons() {
	s.Buttons = 0
	s.Hat = uint8(HatCenter)
	s.hatPos = uint8(HatCenter)
}

// SetHat takes the first hat only. With no hats the previously set position
// is asserted again.
func (s *FrameState) SetHat(hats []Hat, m HatMap) {
	if len(hats) == 0 {
		s.Hat = s.hatPos
		return
	}
	s.hatPos = m.value(hats[0])
	s.Hat = s.hatPos
}

func (s *FrameState) UnsetHat(m HatMap) {
	s.hatPos = m.value(HatCenter)
	s.Hat = s.hatPos
}

// SetAnyDirection writes each direction into its stick. A stick is marked
// changed only when its value differs from the current one.
func (s *FrameState) SetAnyDirection(dirs []Direction, xReverse, yReverse bool) {
	for _, d := range dirs {
		x, y := d.X, AxisMax-d.Y
		if xReverse {
			x = AxisMax - x
		}
		if yReverse {
			y = d.Y
		}
		switch d.Stick {
		case StickLeft:
			if s.LX != x || s.LY != y {
				s.LeftChanged = true
			}
			s.LX, s.LY = x, y
		case StickRight:
			if s.RX != x || s.RY != y {
				s.RightChanged = true
			}
			s.RX, s.RY = x, y
		}
	}
}

// UnsetDirection centers the axis implied by each tilt. The other axis of the
// same stick is pinned to its extreme unless it is already centered, so
// releasing one half of a diagonal keeps the other half held.
func (s *FrameState) UnsetDirection(tilts []Tilt) {
	if slices.Contains(tilts, TiltUp) || slices.Contains(tilts, TiltDown) {
		s.LY = AxisCenter
		s.LX = pinAxis(s.LX)
		s.LeftChanged = true
	}
	if slices.Contains(tilts, TiltRight) || slices.Contains(tilts, TiltLeft) {
		s.LX = AxisCenter
		s.LY = pinAxis(s.LY)
		s.LeftChanged = true
	}
	if slices.Contains(tilts, TiltRUp) || slices.Contains(tilts, TiltRDown) {
		s.RY = AxisCenter
		s.RX = pinAxis(s.RX)
		s.RightChanged = true
	}
	if slices.Contains(tilts, TiltRRight) || slices.Contains(tilts, TiltRLeft) {
		s.RX = AxisCenter
		s.RY = pinAxis(s.RY)
		s.RightChanged = true
	}
}

func pinAxis(v uint8) uint8 {
	switch {
	case v == AxisCenter:
		return AxisCenter
	case v < AxisCenter:
		return AxisMin
	default:
		return AxisMax
	}
}

// CenterSticks centers both sticks. A stick is marked changed only if it moved.
func (s *FrameState) CenterSticks() {
	if s.LX != AxisCenter || s.LY != AxisCenter {
		s.LX, s.LY = AxisCenter, AxisCenter
		s.LeftChanged = true
	}
	if s.RX != AxisCenter || s.RY != AxisCenter {
		s.RX, s.RY = AxisCenter, AxisCenter
		s.RightChanged = true
	}
}

func (s *FrameState) ResetAllDirections() {
	s.LX, s.LY = AxisCenter, AxisCenter
	s.RX, s.RY = AxisCenter, AxisCenter
	s.LeftChanged = false
	s.RightChanged = false
	s.Hat = uint8(HatCenter)
	s.hatPos = uint8(HatCenter)
}

// SetTouchscreen takes the first point only; an empty list keeps the current one.
func (s *FrameState) SetTouchscreen(points []Touch) {
	if len(points) == 0 {
		return
	}
	s.TouchX = points[0].X
	s.TouchY = points[0].Y
}

func (s *FrameState) UnsetTouchscreen() {
	s.TouchX = 0
	s.TouchY = 0
}

// Row renders the text encoding and clears both changed flags.
//
//	<btn:%#06x> <hat>[ <lx> <ly>][ <rx> <ry>]
func (s *FrameState) Row() string {
	btn := uint32(s.Buttons&uint16(ButtonMask)) << RowButtonShift
	if s.LeftChanged {
		btn |= RowFlagLeftStick
	}
	if s.RightChanged {
		btn |= RowFlagRightStick
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "0x%04x %d", btn, s.Hat)
	if s.LeftChanged {
		fmt.Fprintf(&sb, " %x %x", s.LX, s.LY)
	}
	if s.RightChanged {
		fmt.Fprintf(&sb, " %x %x", s.RX, s.RY)
	}

	s.LeftChanged = false
	s.RightChanged = false
	return sb.String()
}

// QingpiFrame renders the fixed 11-byte frame. The right stick has no channel
// and is always sent centered.
func (s *FrameState) QingpiFrame() []byte {
	return []byte{
		QingpiHeader,
		byte(s.Buttons),
		byte(s.Buttons >> 8),
		s.Hat,
		s.LX,
		s.LY,
		AxisCenter,
		AxisCenter,
		byte(s.TouchX),
		byte(s.TouchX >> 8),
		s.TouchY,
	}
}

// ThreeDSFrame renders the 6-byte frame pair. Buttons are expected to already
// be in the adapter's bit layout. Stick values below center are sent as their
// distance from center; the right stick and touch panel are not carried.
func (s *FrameState) ThreeDSFrame() []byte {
	return []byte{
		ThreeDSHeader1,
		byte(s.Buttons&0xF)<<4 | ThreeDSHatMap.value(Hat(s.Hat)),
		byte(s.Buttons>>4) & 0x3F,
		ThreeDSHeader2,
		threeDSAxis(s.LX),
		threeDSAxis(s.LY),
	}
}

func threeDSAxis(v uint8) uint8 {
	if v >= AxisCenter {
		return v
	}
	return 127 - v
}

func (s *FrameState) String() string {
	return "btn=" + strconv.FormatUint(uint64(s.Buttons), 16) +
		" hat=" + strconv.Itoa(int(s.Hat)) +
		fmt.Sprintf(" l=(%d,%d) r=(%d,%d) touch=(%d,%d)", s.LX, s.LY, s.RX, s.RY, s.TouchX, s.TouchY)
}
