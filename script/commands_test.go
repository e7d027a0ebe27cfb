package script_test

import (
	"testing"
	"time"

	padtesting "github.com/Alia5/serialpad/internal/testing"
	"github.com/Alia5/serialpad/pad"
	"github.com/Alia5/serialpad/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoutine(t *testing.T, cfg script.Config, do func(c *script.Commands) error) *padtesting.Recorder {
	t.Helper()
	rec := padtesting.NewRecorder()
	e := script.New(t.Name(), script.RoutineFunc(do), cfg, nil)
	require.Equal(t, int32(1), startAndWait(t, e, rec))
	return rec
}

func TestCommandsPressRep(t *testing.T) {
	start := time.Now()
	rec := runRoutine(t, testConfig, func(c *script.Commands) error {
		return c.PressRep(3, 10*time.Millisecond, 20*time.Millisecond, 0, pad.ButtonX)
	})

	assert.Equal(t, []string{
		"0x0020 8", "0x0000 8",
		"0x0020 8", "0x0000 8",
		"0x0020 8", "0x0000 8",
	}, rec.FrameRows())
	// Three presses and two gaps.
	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
}

func TestCommandsHoldAndPress(t *testing.T) {
	rec := runRoutine(t, testConfig, func(c *script.Commands) error {
		if err := c.HoldFor(time.Millisecond, pad.DirRight); err != nil {
			return err
		}
		if err := c.PressFor(time.Millisecond, time.Millisecond, pad.ButtonA); err != nil {
			return err
		}
		return c.HoldEnd(pad.DirRight)
	})

	assert.Equal(t, []string{
		"0x0002 8 ff 7f",
		"0x0010 8",
		"0x0000 8",
		"0x0002 8 80 80",
	}, rec.FrameRows())
}

func TestCommandsDuplicateHold(t *testing.T) {
	var held int
	rec := runRoutine(t, testConfig, func(c *script.Commands) error {
		if err := c.HoldFor(0, pad.DirUp); err != nil {
			return err
		}
		if err := c.HoldFor(0, pad.DirUp); err != nil {
			return err
		}
		held = len(c.Keys().Held())
		return nil
	})

	assert.Equal(t, 1, held)
	assert.Equal(t, []string{"0x0002 8 80 0", "0x0002 8 80 80", "end"}, rec.Lines())
}

func TestCommandsDirectSerial(t *testing.T) {
	rec := runRoutine(t, testConfig, func(c *script.Commands) error {
		return c.DirectSerial(
			[]string{"0x0010 8\r\n", "0x0000 8\n", "ignored"},
			[]time.Duration{0, 5 * time.Millisecond},
		)
	})

	assert.Equal(t, []string{"0x0010 8", "0x0000 8", "end"}, rec.Lines())
}

func TestCommandsShortWaitSpins(t *testing.T) {
	start := time.Now()
	runRoutine(t, testConfig, func(c *script.Commands) error {
		return c.ShortWait(20 * time.Millisecond)
	})
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestCommandsKeysDetachedAfterFinish(t *testing.T) {
	var before, after *pad.KeyPress
	runRoutine(t, testConfig, func(c *script.Commands) error {
		before = c.Keys()
		err := c.Finish()
		after = c.Keys()
		return err
	})

	assert.NotNil(t, before)
	assert.Nil(t, after)
}

func TestCommandsLogger(t *testing.T) {
	runRoutine(t, testConfig, func(c *script.Commands) error {
		assert.NotNil(t, c.Logger())
		assert.Equal(t, pad.FormatDefault, c.Keys().Format())
		return nil
	})
}
