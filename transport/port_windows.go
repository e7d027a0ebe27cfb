//go:build windows

package transport

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/windows"
)

// openPort opens a COM port and sets it to baud, 8N1.
func openPort(path string, baud int) (io.WriteCloser, error) {
	if !strings.HasPrefix(path, `\\.\`) {
		path = `\\.\` + path
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	h := windows.Handle(f.Fd())
	var dcb windows.DCB
	if err := windows.GetCommState(h, &dcb); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("get comm state: %w", err)
	}
	dcb.BaudRate = uint32(baud)
	dcb.ByteSize = 8
	dcb.Parity = windows.NOPARITY
	dcb.StopBits = windows.ONESTOPBIT
	if err := windows.SetCommState(h, &dcb); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("set comm state: %w", err)
	}
	return f, nil
}
