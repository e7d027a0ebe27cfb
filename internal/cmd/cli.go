package cmd

import "github.com/Alia5/serialpad/internal/log"

// CLI is the root command line of serialpad.
type CLI struct {
	Config string     `help:"Config file (json, yaml or toml)" type:"path" env:"SERIALPAD_CONFIG"`
	Log    log.Config `embed:"" prefix:"log."`

	Run     Run           `cmd:"" help:"Run a registered routine"`
	Send    Send          `cmd:"" help:"Send raw text rows"`
	Mcu     Mcu           `cmd:"" help:"Start a routine stored in the controller firmware"`
	Control Control       `cmd:"" help:"Drive the controller from the keyboard"`
	List    List          `cmd:"" help:"List registered routines"`
	Cfg     ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
