package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/serialpad/internal/keyboard"
	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/script"
	"github.com/Alia5/serialpad/transport"
)

type Run struct {
	Routine   string           `arg:"" help:"Name of a registered routine (see 'list')"`
	Serial    transport.Config `embed:"" prefix:"serial."`
	Script    script.Config    `embed:"" prefix:"script."`
	NotifyURL string           `help:"Webhook notifications are posted to" env:"SERIALPAD_NOTIFY_URL"`
	NoKeys    bool             `help:"Disable the p/r/q keyboard shortcuts"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Execute(ctx, logger, rawLogger)
}

// Execute runs the routine until it finishes or ctx is cancelled. A cancelled
// context requests a stop and waits for the routine to wind down.
func (r *Run) Execute(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	factory := script.Lookup(r.Routine)
	if factory == nil {
		return fmt.Errorf("unknown routine %q", r.Routine)
	}

	tr, closer, err := openTransport(r.Serial, nil, logger, rawLogger)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	cfg := r.Script
	cfg.Format = r.Serial.Format
	if r.NotifyURL != "" {
		cfg.Notifier = NewWebhook(r.NotifyURL)
	}
	engine := script.New(r.Routine, factory(), cfg, logger)

	finished := make(chan struct{})
	if !engine.Start(tr, func() { close(finished) }) {
		return fmt.Errorf("routine %q did not start", r.Routine)
	}

	if !r.NoKeys && keyboard.Interactive() {
		if restore, err := keyboard.MakeRaw(); err == nil {
			defer restore()
			logger.Info("Press p to pause, r to resume, q to stop")
			go handleRunKeys(ctx, engine, cancel)
		} else {
			logger.Debug("keyboard shortcuts unavailable", "error", err)
		}
	}

	select {
	case <-finished:
	case <-ctx.Done():
		engine.Stop()
		<-finished
	}
	<-engine.Done()
	return nil
}

func handleRunKeys(ctx context.Context, engine *script.Engine, cancel context.CancelFunc) {
	for k := range keyboard.ReadKeys(ctx, os.Stdin) {
		switch k {
		case 'p':
			engine.Pause()
		case 'r':
			engine.Resume()
		case 'q', keyboard.KeyCtrlC, keyboard.KeyEsc:
			cancel()
			return
		}
	}
}
