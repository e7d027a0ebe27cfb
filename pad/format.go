package pad

import (
	"fmt"
	"strings"
)

// Format selects the wire encoding used for a session.
type Format uint8

const (
	// FormatDefault is the text row protocol understood by the stock firmware.
	FormatDefault Format = iota
	// FormatQingpi is the fixed 11-byte frame with touch panel support.
	FormatQingpi
	// Format3DS is the 6-byte frame pair of the 3DS controller adapter.
	Format3DS
)

func (f Format) String() string {
	switch f {
	case FormatDefault:
		return "default"
	case FormatQingpi:
		return "qingpi"
	case Format3DS:
		return "3ds"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat accepts the names printed by String, case-insensitively, plus
// the labels the settings file historically used.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return FormatDefault, nil
	case "qingpi":
		return FormatQingpi, nil
	case "3ds", "3ds controller":
		return Format3DS, nil
	default:
		return FormatDefault, fmt.Errorf("unknown serial format %q", s)
	}
}

// UnmarshalText lets a Format be used directly as a config or flag value.
func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// HasConnection reports whether the encoding has a session that must be
// closed with a termination line.
func (f Format) HasConnection() bool {
	return f == FormatDefault
}
