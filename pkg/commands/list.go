package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notes/pkg/commands/options"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/runner/list"
	"tableflip.dev/notes/pkg/timeutil"
)

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	since := ""

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list all notes, oldest first",
		Example: `
notes list
notes ls --show-id
notes list --json
notes list --since 3d
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			window, err := timeutil.ParseWindow(since)
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := openEnv(stderr())
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()
			l := list.List{
				Service: e.service(),
				Since:   window,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{Out: oo.Writer()},
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only notes changed within this window, e.g. 3d or 1w2d.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
