package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notes/pkg/commands/options"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	no := &options.NoteOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "change the title or content of a note",
		Example: `
notes edit 1f0c2a9b --title "groceries for sunday"
notes edit 1f0c --content ""
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
			r := edit.Edit{
				Service: e.service(),
				ID:      args[0],
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{ShowID: true, Out: oo.Writer()},
			}
			if no.TitleChanged() {
				r.Title = &no.Title
			}
			if no.ContentChanged() {
				r.Content = &no.Content
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddNoteArgs(cmd, no)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
