package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/script"
	"github.com/Alia5/serialpad/transport"
)

type Mcu struct {
	SyncName string           `arg:"" help:"Name the firmware knows the routine by"`
	Duration time.Duration    `help:"Stop the routine after this long; 0 runs until interrupted" default:"0s"`
	Serial   transport.Config `embed:"" prefix:"serial."`
}

// Run is called by Kong when the mcu command is executed.
func (m *Mcu) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if m.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Duration)
		defer cancel()
	}
	return m.Execute(ctx, logger, rawLogger)
}

// Execute starts the firmware routine and stops it when ctx is done.
func (m *Mcu) Execute(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	tr, closer, err := openTransport(m.Serial, nil, logger, rawLogger)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	cmd := script.NewMcuCommand(m.SyncName, logger)
	cmd.Start(tr, nil)
	<-ctx.Done()
	cmd.Stop()
	return nil
}
