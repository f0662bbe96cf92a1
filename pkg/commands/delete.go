package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notes/pkg/commands/options"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/runner/remove"
	"tableflip.dev/notes/pkg/screen"
	"tableflip.dev/notes/pkg/snake"
)

func addDelete(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "delete one or more notes",
		Example: `
notes delete 1f0c2a9b
notes rm 1f0c 77ab
notes rm -i 1f0c
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			e, err := openEnv(stderr())
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()
			r := remove.Remove{
				Service: e.service(),
				IDs:     args,
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{ShowID: true, Out: oo.Writer()},
			}
			if i.Interactive {
				p := &snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				r.Confirm = func(count int) (bool, error) {
					return p.Confirm(screen.DeletePrompt(count))
				}
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.InteractiveArgs(cmd, i, "Ask before deleting.")

	topLevel.AddCommand(cmd)
}
