package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/serialpad/internal/keyboard"
	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/pad"
	"github.com/Alia5/serialpad/script"
	"github.com/Alia5/serialpad/transport"
)

// keyToggle starts or stops the routine given to control.
const keyToggle = '\t'

type Control struct {
	Keymap  string           `help:"Keymap file (json, yaml or toml) overriding the default bindings" type:"path" env:"SERIALPAD_KEYMAP"`
	Routine string           `help:"Routine toggled with the Tab key"`
	Serial  transport.Config `embed:"" prefix:"serial."`
	Script  script.Config    `embed:"" prefix:"script."`

	// Out receives dry-run frames instead of stdout.
	Out io.Writer `kong:"-"`
}

// Run is called by Kong when the control command is executed.
func (c *Control) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !keyboard.Interactive() {
		return fmt.Errorf("control needs an interactive terminal")
	}
	restore, err := keyboard.MakeRaw()
	if err != nil {
		return fmt.Errorf("failed to switch terminal to raw mode: %w", err)
	}
	defer restore()

	return c.Execute(ctx, os.Stdin, logger, rawLogger)
}

func (c *Control) Execute(ctx context.Context, in io.Reader, logger *slog.Logger, rawLogger log.RawLogger) error {
	km := keyboard.DefaultKeymap()
	if c.Keymap != "" {
		var err error
		if km, err = keyboard.LoadKeymap(c.Keymap); err != nil {
			return err
		}
	}
	bindings, err := km.Compile()
	if err != nil {
		return err
	}

	tr, closer, err := openTransport(c.Serial, c.Out, logger, rawLogger)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	keys := pad.NewKeyPress(tr, c.Serial.Format, logger)
	ctrl := keyboard.NewController(keys, bindings, logger)

	var engine *script.Engine
	if c.Routine != "" {
		factory := script.Lookup(c.Routine)
		if factory == nil {
			return fmt.Errorf("unknown routine %q", c.Routine)
		}
		cfg := c.Script
		cfg.Format = c.Serial.Format
		engine = script.New(c.Routine, factory(), cfg, logger)
		ctrl.Busy = engine.Running
		ctrl.Special = map[rune]func(){
			keyToggle: func() {
				if engine.Running() {
					engine.Stop()
					return
				}
				engine.Start(tr, func() { logger.Info("Routine ended, keyboard control restored") })
			},
		}
	}

	logger.Info("Keyboard control started, Esc quits", "bindings", len(bindings))
	err = ctrl.Run(ctx, in)
	if engine != nil {
		engine.Stop()
		<-engine.Done()
	}
	if !keys.IsNeutral() {
		keys.Neutral()
	}
	keys.End()
	return err
}
