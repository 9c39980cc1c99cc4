package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/menufs/cmd"
)

// WatchCommand prints change events of a directory until the context ends,
// the directory disappears or --count events were printed.
type WatchCommand struct{}

func (*WatchCommand) Name() string {
	return "watch"
}

func (*WatchCommand) Description() string {
	return "Print changes of a menu directory"
}

func (*WatchCommand) Usage() string {
	return "watch [-n count] [path]"
}

func (wc *WatchCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, w io.Writer) (int, error) {
	if len(args.Args) > 1 {
		return usageError(wc)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := api.Watch(ctx, args.Arg(0, ""))
	if err != nil {
		return 1, err
	}

	limit := args.Int("count")
	var printed int64
	for {
		select {
		case <-ctx.Done():
			return 0, nil
		case event, ok := <-events:
			if !ok {
				return 0, nil
			}

			fmt.Fprintln(w, event.String())
			printed++
			if limit > 0 && printed >= limit {
				return 0, nil
			}
		}
	}
}

func (*WatchCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		&cmd.CommandFlag{Name: "count", Short: "n", Type: cmd.FlagInt, Default: int64(0), Description: "Stop after this many events"},
	)
}
