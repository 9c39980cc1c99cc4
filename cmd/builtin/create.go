package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/menufs/cmd"
)

// CreateCommand writes a new application. Key=Value arguments become keys
// of the [Desktop Entry] group.
type CreateCommand struct{}

func (*CreateCommand) Name() string {
	return "create"
}

func (*CreateCommand) Description() string {
	return "Create an application inside a category directory"
}

func (*CreateCommand) Usage() string {
	return "create [--replace] <category/.../id.desktop> [Key=Value...]"
}

func (c *CreateCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, w io.Writer) (int, error) {
	if len(args.Args) == 0 {
		return usageError(c)
	}

	var content strings.Builder
	content.WriteString("[Desktop Entry]\n")
	for _, pair := range args.Args[1:] {
		if !strings.Contains(pair, "=") {
			return 2, fmt.Errorf("invalid key '%s': expected Key=Value", pair)
		}
		content.WriteString(pair)
		content.WriteString("\n")
	}

	write := api.Create
	if args.Bool("replace") {
		write = api.Replace
	}
	if err := write(ctx, args.Args[0], []byte(content.String())); err != nil {
		return 1, err
	}

	fmt.Fprintf(w, "created %s\n", args.Args[0])
	return 0, nil
}

func (*CreateCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		&cmd.CommandFlag{Name: "replace", Short: "r", Type: cmd.FlagBool, Description: "Overwrite an existing application"},
	)
}
