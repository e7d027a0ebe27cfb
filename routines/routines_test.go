package routines_test

import (
	"testing"
	"time"

	padtesting "github.com/Alia5/serialpad/internal/testing"
	"github.com/Alia5/serialpad/pad"
	"github.com/Alia5/serialpad/routines"
	"github.com/Alia5/serialpad/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, r script.Routine, format pad.Format, stopAfter time.Duration) *padtesting.Recorder {
	t.Helper()
	rec := padtesting.NewRecorder()
	e := script.New(t.Name(), r, script.Config{PollInterval: 10 * time.Millisecond, Format: format}, nil)

	done := make(chan struct{})
	require.True(t, e.Start(rec, func() { close(done) }))
	if stopAfter > 0 {
		time.Sleep(stopAfter)
		e.Stop()
	}
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("routine did not complete")
	}
	<-e.Done()
	return rec
}

func TestUnitRoutinesRegistered(t *testing.T) {
	for _, name := range []string{
		"press_a", "press_b", "press_x", "press_y", "press_l", "press_r", "press_zl", "press_zr",
		"press_minus", "press_plus", "press_lclick", "press_rclick", "press_home", "press_capture",
		"press_hat_top", "press_hat_top_right", "press_hat_right", "press_hat_btm_right",
		"press_hat_btm", "press_hat_btm_left", "press_hat_left", "press_hat_top_left",
	} {
		assert.NotNil(t, script.Lookup(name), name)
	}
	for _, name := range []string{"mash_a", "touch_circle", "spin_left_stick", "spin_right_stick"} {
		assert.NotNil(t, script.Lookup(name), name)
	}
}

func TestUnitPress(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{name: "press_a", want: []string{"0x0010 8", "0x0000 8", "end"}},
		{name: "press_capture", want: []string{"0x8000 8", "0x0000 8", "end"}},
		{name: "press_hat_top", want: []string{"0x0000 0", "0x0000 8", "end"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := script.Lookup(tt.name)()
			rec := run(t, r, pad.FormatDefault, 0)
			assert.Equal(t, tt.want, rec.Lines())
		})
	}
}

func TestUnitDescription(t *testing.T) {
	u := &routines.Unit{In: pad.ButtonA.Input()}
	assert.Equal(t, "Press Button.A once", u.Description())
}

func TestMashA(t *testing.T) {
	rec := run(t, &routines.MashA{Interval: time.Millisecond}, pad.FormatDefault, 150*time.Millisecond)

	rows := rec.FrameRows()
	require.GreaterOrEqual(t, len(rows), 2)
	for i, row := range rows {
		if i%2 == 0 {
			assert.Equal(t, "0x0010 8", row)
		} else {
			assert.Equal(t, "0x0000 8", row)
		}
	}
	assert.Equal(t, "0x0000 8", rows[len(rows)-1])
}

func TestTouchCircle(t *testing.T) {
	r := &routines.TouchCircle{CenterX: 160, CenterY: 120, Radius: 50, StepDeg: 90}
	rec := run(t, r, pad.FormatQingpi, 0)

	frames := rec.Frames()
	require.Len(t, frames, 5)
	touch := func(f []byte) [2]int {
		return [2]int{int(f[8]) | int(f[9])<<8, int(f[10])}
	}
	assert.Equal(t, [2]int{210, 120}, touch(frames[0]))
	assert.Equal(t, [2]int{160, 170}, touch(frames[1]))
	assert.Equal(t, [2]int{110, 120}, touch(frames[2]))
	assert.Equal(t, [2]int{160, 70}, touch(frames[3]))
	assert.Equal(t, [2]int{0, 0}, touch(frames[4]))
	assert.Empty(t, rec.Lines())
}

func TestStickSpin(t *testing.T) {
	r := &routines.StickSpin{Stick: pad.StickLeft, StepDeg: 90}
	rec := run(t, r, pad.FormatDefault, 0)

	rows := rec.FrameRows()
	require.Len(t, rows, 8)
	assert.Equal(t, "0x0002 8 ff 7f", rows[0])
	assert.Equal(t, "0x0002 8 80 80", rows[7])
	assert.Equal(t, "end", rec.Lines()[8])
	assert.Equal(t, "Spin Stick.LEFT through a full turn", r.Description())
}
