package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/menufs/cmd"
)

type MvCommand struct{}

func (*MvCommand) Name() string {
	return "mv"
}

func (*MvCommand) Description() string {
	return "Move an application to another category directory"
}

func (*MvCommand) Usage() string {
	return "mv <src> <dst>"
}

func (m *MvCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, w io.Writer) (int, error) {
	if len(args.Args) != 2 {
		return usageError(m)
	}

	if err := api.Move(ctx, args.Args[0], args.Args[1]); err != nil {
		return 1, err
	}

	fmt.Fprintf(w, "moved %s -> %s\n", args.Args[0], args.Args[1])
	return 0, nil
}

func (*MvCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
