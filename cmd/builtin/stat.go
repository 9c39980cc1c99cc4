package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/menufs/cmd"
)

type StatCommand struct{}

func (*StatCommand) Name() string {
	return "stat"
}

func (*StatCommand) Description() string {
	return "Show the record of a directory or application"
}

func (*StatCommand) Usage() string {
	return "stat [--json] <path>"
}

func (s *StatCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, w io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return usageError(s)
	}

	info, err := api.Stat(ctx, args.Args[0])
	if err != nil {
		return 1, err
	}

	if args.Bool("json") {
		content, err := info.Marshal()
		if err != nil {
			return 1, err
		}
		fmt.Fprintln(w, string(content))
		return 0, nil
	}

	fmt.Fprintf(w, "  URI: %s\n", info.URI())
	fmt.Fprintf(w, "   ID: %s\n", info.ID)
	fmt.Fprintf(w, " Name: %s\n", info.DisplayName)
	fmt.Fprintf(w, " Icon: %s\n", info.Icon)
	fmt.Fprintf(w, " Kind: %s\n", info.Kind)
	fmt.Fprintf(w, "Shown: %t\n", !info.Hidden)
	if info.FilePath != "" {
		fmt.Fprintf(w, " File: %s\n", info.FilePath)
	}

	return 0, nil
}

func (*StatCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		&cmd.CommandFlag{Name: "json", Short: "j", Type: cmd.FlagBool, Description: "Print the record as JSON"},
	)
}
