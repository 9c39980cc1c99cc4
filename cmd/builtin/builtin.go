// Package builtin provides the commands every menu filesystem registers.
package builtin

import (
	"fmt"

	"github.com/mwantia/menufs/cmd"
)

// Commands returns a fresh instance of every builtin command.
func Commands() []cmd.Command {
	return []cmd.Command{
		&LsCommand{},
		&StatCommand{},
		&CatCommand{},
		&CreateCommand{},
		&RmCommand{},
		&MvCommand{},
		&WatchCommand{},
	}
}

func usageError(c cmd.Command) (int, error) {
	return 2, fmt.Errorf("usage: %s", c.Usage())
}
