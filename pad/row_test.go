package pad_test

import (
	"testing"

	"github.com/Alia5/serialpad/pad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    pad.Row
		wantErr bool
	}{
		{name: "button only", line: "0x0010 8", want: pad.Row{Buttons: pad.ButtonA, Hat: pad.HatCenter}},
		{name: "left stick", line: "0x0002 8 ff 7f", want: pad.Row{Hat: pad.HatCenter, LeftStick: &[2]uint8{255, 127}}},
		{name: "both sticks and hat", line: "0x0003 2 80 0 ff 80", want: pad.Row{
			Hat:        pad.HatRight,
			LeftStick:  &[2]uint8{128, 0},
			RightStick: &[2]uint8{255, 128},
		}},
		{name: "uppercase hex", line: "0X0018 0", want: pad.Row{Buttons: pad.ButtonA | pad.ButtonB, Hat: pad.HatTop}},
		{name: "bad button field", line: "zz 8", wantErr: true},
		{name: "missing stick value", line: "0x0002 8 80", wantErr: true},
		{name: "hat out of range", line: "0x0000 9", wantErr: true},
		{name: "trailing fields", line: "0x0000 8 1 2", wantErr: true},
		{name: "too short", line: "0x0000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pad.ParseRow(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRowReadsFrameStateRows(t *testing.T) {
	s := pad.NewFrameState()
	s.SetButton([]pad.Button{pad.ButtonX | pad.ButtonZR}, nil)
	s.SetHat([]pad.Hat{pad.HatBottomLeft}, pad.DefaultHatMap)
	s.SetAnyDirection([]pad.Direction{pad.NewDirectionXY(pad.StickRight, 10, 250)}, false, false)

	row, err := pad.ParseRow(s.Row())
	require.NoError(t, err)
	assert.Equal(t, pad.ButtonX|pad.ButtonZR, row.Buttons)
	assert.Equal(t, pad.HatBottomLeft, row.Hat)
	assert.Nil(t, row.LeftStick)
	assert.Equal(t, &[2]uint8{10, 5}, row.RightStick)
}

func TestRowDescribe(t *testing.T) {
	r, err := pad.ParseRow("0x0010 8")
	require.NoError(t, err)
	assert.Equal(t, "Button.A", r.Describe())

	r, err = pad.ParseRow("0x0000 8")
	require.NoError(t, err)
	assert.Equal(t, "neutral", r.Describe())
}
