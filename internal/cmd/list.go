package cmd

import (
	"fmt"

	"github.com/Alia5/serialpad/script"
)

type List struct{}

// describer is implemented by routines that can explain themselves.
type describer interface {
	Description() string
}

func (l *List) Run() error {
	for _, name := range script.Names() {
		desc := ""
		if d, ok := script.Lookup(name)().(describer); ok {
			desc = d.Description()
		}
		fmt.Printf("%-20s %s\n", name, desc)
	}
	return nil
}
