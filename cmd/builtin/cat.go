package builtin

import (
	"context"
	"io"

	"github.com/mwantia/menufs/cmd"
)

type CatCommand struct{}

func (*CatCommand) Name() string {
	return "cat"
}

func (*CatCommand) Description() string {
	return "Print the desktop entry backing an application"
}

func (*CatCommand) Usage() string {
	return "cat <path>..."
}

func (c *CatCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, w io.Writer) (int, error) {
	if len(args.Args) == 0 {
		return usageError(c)
	}

	for _, path := range args.Args {
		content, err := api.ReadFile(ctx, path)
		if err != nil {
			return 1, err
		}
		if _, err := w.Write(content); err != nil {
			return 1, err
		}
	}

	return 0, nil
}

func (*CatCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
