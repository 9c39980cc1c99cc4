package builtin

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mwantia/menufs/cmd"
	"github.com/mwantia/menufs/data"
)

type LsCommand struct {
}

// Name returns the command identifier
func (ls *LsCommand) Name() string {
	return "ls"
}

// Description returns human-readable help text
func (ls *LsCommand) Description() string {
	return "List the entries of a menu directory"
}

// Usage returns a usage string for help (e.g. "ls -al [path]")
func (ls *LsCommand) Usage() string {
	return "ls [-l] [-a] [path]"
}

// Execute runs the command with parsed arguments
// Returns exit code (0 = success) and error message
func (ls *LsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, w io.Writer) (int, error) {
	if len(args.Args) > 1 {
		return usageError(ls)
	}

	infos, err := api.ReadDirectory(ctx, args.Arg(0, ""))
	if err != nil {
		return 1, err
	}

	all := args.Bool("all")
	if !args.Bool("long") {
		for _, info := range infos {
			if info.Hidden && !all {
				continue
			}
			fmt.Fprintln(w, entryName(info))
		}
		return 0, nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, info := range infos {
		if info.Hidden && !all {
			continue
		}

		visibility := "-"
		if info.Hidden {
			visibility = "h"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Kind, visibility, entryName(info), info.DisplayName)
	}

	return 0, tw.Flush()
}

// GetFlags returns the flag set for this command (this is optional)
func (ls *LsCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		&cmd.CommandFlag{Name: "long", Short: "l", Type: cmd.FlagBool, Description: "Show kind, visibility and display name"},
		&cmd.CommandFlag{Name: "all", Short: "a", Type: cmd.FlagBool, Description: "Include entries hidden for the desktop"},
	)
}

func entryName(info *data.ItemInfo) string {
	if info.IsDir() {
		return info.ID + "/"
	}

	return info.ID
}
