package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/menufs/cmd"
)

type RmCommand struct{}

func (*RmCommand) Name() string {
	return "rm"
}

func (*RmCommand) Description() string {
	return "Hide an application from the menu"
}

func (*RmCommand) Usage() string {
	return "rm <path>..."
}

func (r *RmCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, w io.Writer) (int, error) {
	if len(args.Args) == 0 {
		return usageError(r)
	}

	for _, path := range args.Args {
		if err := api.Delete(ctx, path); err != nil {
			return 1, err
		}
		fmt.Fprintf(w, "removed %s\n", path)
	}

	return 0, nil
}

func (*RmCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
