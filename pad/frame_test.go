package pad_test

import (
	"testing"

	"github.com/Alia5/serialpad/pad"
	"github.com/stretchr/testify/assert"
)

func TestUnsetButtonIsIdempotent(t *testing.T) {
	s := pad.NewFrameState()
	s.SetButton([]pad.Button{pad.ButtonB}, nil)
	s.UnsetButton([]pad.Button{pad.ButtonA}, nil)
	assert.Equal(t, uint16(pad.ButtonB), s.Buttons)
	s.UnsetButton([]pad.Button{pad.ButtonA}, nil)
	assert.Equal(t, uint16(pad.ButtonB), s.Buttons)
}

func TestRowIncludesChangedStickOnce(t *testing.T) {
	s := pad.NewFrameState()
	s.SetAnyDirection([]pad.Direction{pad.NewDirectionXY(pad.StickLeft, 255, 128)}, false, false)
	assert.Equal(t, "0x0002 8 ff 7f", s.Row())
	assert.Equal(t, "0x0000 8", s.Row())

	// Same value again is not a change.
	s.SetAnyDirection([]pad.Direction{pad.NewDirectionXY(pad.StickLeft, 255, 128)}, false, false)
	assert.Equal(t, "0x0000 8", s.Row())

	s.SetAnyDirection([]pad.Direction{pad.NewDirectionXY(pad.StickRight, 0, 255)}, false, false)
	s.SetButton([]pad.Button{pad.ButtonA}, nil)
	assert.Equal(t, "0x0011 8 0 0", s.Row())
}

func TestRowBothSticks(t *testing.T) {
	s := pad.NewFrameState()
	s.SetHat([]pad.Hat{pad.HatRight}, pad.DefaultHatMap)
	s.SetAnyDirection([]pad.Direction{
		pad.NewDirectionXY(pad.StickLeft, 128, 255),
		pad.NewDirectionXY(pad.StickRight, 255, 128),
	}, false, false)
	assert.Equal(t, "0x0003 2 80 0 ff 7f", s.Row())
}

func TestSetHatRemembersPosition(t *testing.T) {
	s := pad.NewFrameState()
	s.SetHat([]pad.Hat{pad.HatLeft, pad.HatTop}, pad.DefaultHatMap)
	assert.Equal(t, uint8(pad.HatLeft), s.Hat)

	s.Hat = uint8(pad.HatCenter)
	s.SetHat(nil, pad.DefaultHatMap)
	assert.Equal(t, uint8(pad.HatLeft), s.Hat)

	s.UnsetHat(pad.DefaultHatMap)
	assert.Equal(t, uint8(pad.HatCenter), s.Hat)
}

func TestUnsetDirectionPinsOtherAxis(t *testing.T) {
	s := pad.NewFrameState()
	s.SetAnyDirection([]pad.Direction{pad.NewDirectionXY(pad.StickLeft, 200, 200)}, false, false)
	assert.Equal(t, uint8(200), s.LX)
	assert.Equal(t, uint8(55), s.LY)

	s.UnsetDirection([]pad.Tilt{pad.TiltUp})
	assert.Equal(t, pad.AxisCenter, s.LY)
	assert.Equal(t, pad.AxisMax, s.LX)

	s.UnsetDirection([]pad.Tilt{pad.TiltRight})
	assert.True(t, s.IsNeutral())
}

func TestSetAnyDirectionReverse(t *testing.T) {
	s := pad.NewFrameState()
	s.SetAnyDirection([]pad.Direction{pad.NewDirectionXY(pad.StickRight, 10, 20)}, true, true)
	assert.Equal(t, uint8(245), s.RX)
	assert.Equal(t, uint8(20), s.RY)
	assert.True(t, s.RightChanged)
	assert.False(t, s.LeftChanged)
}

func TestResetAllDirections(t *testing.T) {
	s := pad.NewFrameState()
	s.SetHat([]pad.Hat{pad.HatTop}, pad.DefaultHatMap)
	s.SetAnyDirection([]pad.Direction{pad.DirRUp, pad.DirDown}, false, false)
	s.ResetAllDirections()
	assert.True(t, s.IsNeutral())
	assert.False(t, s.LeftChanged)
	assert.False(t, s.RightChanged)
	assert.Equal(t, "0x0000 8", s.Row())
}

func TestQingpiFrame(t *testing.T) {
	s := pad.NewFrameState()
	s.SetButton([]pad.Button{pad.ButtonA | pad.ButtonCapture}, nil)
	s.SetHat([]pad.Hat{pad.HatBottom}, pad.DefaultHatMap)
	s.SetAnyDirection([]pad.Direction{
		pad.NewDirectionXY(pad.StickLeft, 0, 255),
		pad.NewDirectionXY(pad.StickRight, 255, 255),
	}, false, false)
	s.SetTouchscreen([]pad.Touch{pad.NewTouch(300, 200), pad.NewTouch(1, 1)})

	f := s.QingpiFrame()
	assert.Len(t, f, pad.QingpiFrameSize)
	assert.Equal(t, []byte{0xAB, 0x04, 0x20, 0x04, 0x00, 0x00, 0x80, 0x80, 0x2C, 0x01, 0xC8}, f)
}

func TestThreeDSFrame(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *pad.FrameState)
		want  []byte
	}{
		{
			name:  "neutral",
			setup: func(s *pad.FrameState) {},
			want:  []byte{0xA1, 0x00, 0x00, 0xA2, 0x80, 0x80},
		},
		{
			name: "a",
			setup: func(s *pad.FrameState) {
				s.SetButton([]pad.Button{pad.ButtonA}, pad.ThreeDSButtonMap)
			},
			want: []byte{0xA1, 0x10, 0x00, 0xA2, 0x80, 0x80},
		},
		{
			name: "home and hat top",
			setup: func(s *pad.FrameState) {
				s.SetButton([]pad.Button{pad.ButtonHome}, pad.ThreeDSButtonMap)
				s.SetHat([]pad.Hat{pad.HatTop}, pad.DefaultHatMap)
			},
			want: []byte{0xA1, 0x08, 0x04, 0xA2, 0x80, 0x80},
		},
		{
			name: "unsupported button maps to nothing",
			setup: func(s *pad.FrameState) {
				s.SetButton([]pad.Button{pad.ButtonZL}, pad.ThreeDSButtonMap)
			},
			want: []byte{0xA1, 0x00, 0x00, 0xA2, 0x80, 0x80},
		},
		{
			name: "stick below center is distance from center",
			setup: func(s *pad.FrameState) {
				s.SetAnyDirection([]pad.Direction{pad.NewDirectionXY(pad.StickLeft, 0, 255)}, false, false)
			},
			want: []byte{0xA1, 0x00, 0x00, 0xA2, 0x7F, 0x7F},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := pad.NewFrameState()
			tt.setup(s)
			assert.Equal(t, tt.want, s.ThreeDSFrame())
		})
	}
}
