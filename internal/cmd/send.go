package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/pad"
	"github.com/Alia5/serialpad/script"
	"github.com/Alia5/serialpad/transport"
)

type Send struct {
	Rows     []string         `arg:"" help:"Rows to send, e.g. '0x0004 8' or 'end'"`
	Interval time.Duration    `help:"Delay before each row" default:"100ms" env:"SERIALPAD_SEND_INTERVAL"`
	Check    bool             `help:"Reject rows that do not decode as controller frames" default:"true" negatable:""`
	Serial   transport.Config `embed:"" prefix:"serial."`

	// Out receives dry-run frames instead of stdout.
	Out io.Writer `kong:"-"`
}

// Run is called by Kong when the send command is executed.
func (s *Send) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Execute(ctx, logger, rawLogger)
}

func (s *Send) Execute(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	if s.Check {
		for _, row := range s.Rows {
			if row == pad.RowEnd {
				continue
			}
			if _, err := pad.ParseRow(row); err != nil {
				return err
			}
		}
	}

	tr, closer, err := openTransport(s.Serial, s.Out, logger, rawLogger)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	wait := []time.Duration{s.Interval}
	routine := script.RoutineFunc(func(c *script.Commands) error {
		for _, row := range s.Rows {
			if err := c.DirectSerial([]string{row}, wait); err != nil {
				return err
			}
		}
		return nil
	})

	engine := script.New("send", routine, script.Config{Format: s.Serial.Format}, logger)
	finished := make(chan struct{})
	engine.Start(tr, func() { close(finished) })
	select {
	case <-finished:
	case <-ctx.Done():
		engine.Stop()
		<-finished
	}
	return nil
}
