package pad

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is a decoded text row.
type Row struct {
	Buttons    Button
	Hat        Hat
	LeftStick  *[2]uint8
	RightStick *[2]uint8
}

// ParseRow decodes a line produced by FrameState.Row. Stick pairs are present
// only when the matching flag is set in the button field.
func ParseRow(line string) (Row, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Row{}, fmt.Errorf("row %q: expected at least 2 fields", line)
	}

	btn, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(fields[0]), "0x"), 16, 32)
	if err != nil {
		return Row{}, fmt.Errorf("row %q: button field: %w", line, err)
	}
	hat, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil || hat > uint64(HatCenter) {
		return Row{}, fmt.Errorf("row %q: invalid hat %q", line, fields[1])
	}

	r := Row{
		Buttons: Button(btn>>RowButtonShift) & ButtonMask,
		Hat:     Hat(hat),
	}
	rest := fields[2:]
	if btn&RowFlagLeftStick != 0 {
		if r.LeftStick, rest, err = parseStickPair(rest); err != nil {
			return Row{}, fmt.Errorf("row %q: left stick: %w", line, err)
		}
	}
	if btn&RowFlagRightStick != 0 {
		if r.RightStick, rest, err = parseStickPair(rest); err != nil {
			return Row{}, fmt.Errorf("row %q: right stick: %w", line, err)
		}
	}
	if len(rest) != 0 {
		return Row{}, fmt.Errorf("row %q: %d trailing fields", line, len(rest))
	}
	return r, nil
}

func parseStickPair(fields []string) (*[2]uint8, []string, error) {
	if len(fields) < 2 {
		return nil, fields, fmt.Errorf("missing axis values")
	}
	var out [2]uint8
	for i := range out {
		v, err := strconv.ParseUint(fields[i], 16, 8)
		if err != nil {
			return nil, fields, err
		}
		out[i] = uint8(v)
	}
	return &out, fields[2:], nil
}

// Describe renders a row in a human-readable form for logs.
func (r Row) Describe() string {
	var parts []string
	if r.Buttons != 0 {
		parts = append(parts, r.Buttons.String())
	}
	if r.Hat != HatCenter {
		parts = append(parts, r.Hat.String())
	}
	if r.LeftStick != nil {
		d := Direction{Stick: StickLeft, X: r.LeftStick[0], Y: AxisMax - r.LeftStick[1]}
		parts = append(parts, fmt.Sprintf("LStick(%d,%d %.0fdeg)", r.LeftStick[0], r.LeftStick[1], d.Angle()))
	}
	if r.RightStick != nil {
		d := Direction{Stick: StickRight, X: r.RightStick[0], Y: AxisMax - r.RightStick[1]}
		parts = append(parts, fmt.Sprintf("RStick(%d,%d %.0fdeg)", r.RightStick[0], r.RightStick[1], d.Angle()))
	}
	if len(parts) == 0 {
		return "neutral"
	}
	return strings.Join(parts, " ")
}
