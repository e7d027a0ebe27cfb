package transport

import (
	"fmt"
	"runtime"

	"github.com/Alia5/serialpad/pad"
)

// Config selects the serial port and the wire format spoken over it.
type Config struct {
	Port   string     `help:"Serial device path or name; overrides --serial.num" env:"SERIALPAD_PORT"`
	Num    int        `help:"Port number used to build the platform's default device name" default:"0" env:"SERIALPAD_PORT_NUM"`
	Baud   int        `help:"Baud rate" default:"9600" env:"SERIALPAD_BAUD"`
	Format pad.Format `help:"Wire format: default, qingpi or 3ds" default:"default" env:"SERIALPAD_FORMAT"`
	DryRun bool       `help:"Print frames to stdout instead of opening a port" env:"SERIALPAD_DRY_RUN"`
}

// DevicePath returns Port, or the platform's conventional name for the
// numbered USB serial adapter.
func (c Config) DevicePath() string {
	if c.Port != "" {
		return c.Port
	}
	return defaultDevicePath(runtime.GOOS, c.Num)
}

func defaultDevicePath(goos string, num int) string {
	switch goos {
	case "windows":
		return fmt.Sprintf("COM%d", num)
	case "darwin":
		return fmt.Sprintf("/dev/tty.usbserial-%d", num)
	default:
		return fmt.Sprintf("/dev/ttyUSB%d", num)
	}
}
