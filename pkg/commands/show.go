package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notes/pkg/commands/options"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "print one note",
		Example: `
notes show 1f0c2a9b
notes show 1f0c --json
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			e, err := openEnv(stderr())
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()
			s := show.Show{
				Service: e.service(),
				ID:      args[0],
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{ShowID: true, Out: oo.Writer()},
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
