//go:build !windows

package transport

import (
	"io"

	"github.com/pkg/term"
)

func openPort(path string, baud int) (io.WriteCloser, error) {
	t, err := term.Open(path, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, err
	}
	return t, nil
}
