package keyboard

import (
	"bufio"
	"context"
	"io"
	"os"

	"golang.org/x/term"
)

// Interactive reports whether stdin is a terminal.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// MakeRaw switches stdin to raw mode and returns the function that restores
// it.
func MakeRaw() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { _ = term.Restore(fd, old) }, nil
}

// ReadKeys delivers the runes read from in until ctx is done or in fails.
// The reading goroutine stays blocked on in until its next rune arrives.
func ReadKeys(ctx context.Context, in io.Reader) <-chan rune {
	out := make(chan rune)
	go func() {
		defer close(out)
		br := bufio.NewReader(in)
		for {
			r, _, err := br.ReadRune()
			if err != nil {
				return
			}
			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
