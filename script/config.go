package script

import (
	"time"

	"github.com/Alia5/serialpad/pad"
)

const (
	DefaultPollInterval  = 500 * time.Millisecond
	DefaultShortWait     = 100 * time.Millisecond
	DefaultNotifyTimeout = 10 * time.Second

	// Defaults used by Commands.Press and Commands.Hold.
	DefaultPressDuration = 100 * time.Millisecond
	DefaultPressWait     = 100 * time.Millisecond
)

// Config is owned by an Engine; each engine gets its own copy.
type Config struct {
	PollInterval time.Duration `help:"How often a paused routine re-checks pause and stop requests" default:"500ms" env:"SERIALPAD_POLL_INTERVAL"`
	ShortWait    time.Duration `help:"Waits at or below this length spin instead of sleeping" default:"100ms" env:"SERIALPAD_SHORT_WAIT"`
	NotifyStart  bool          `help:"Send a notification when a routine starts" default:"false"`
	NotifyEnd    bool          `help:"Send a notification when a routine finishes" default:"false"`

	Format   pad.Format `kong:"-"`
	Notifier Notifier   `kong:"-"`
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.ShortWait < 0 {
		c.ShortWait = 0
	}
	return c
}
