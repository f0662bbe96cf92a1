package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notes/pkg/commands/options"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/runner/add"
	"tableflip.dev/notes/pkg/snake"
)

func addAdd(topLevel *cobra.Command) {
	no := &options.NoteOptions{}
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add [content...]",
		Short: "add a note",
		Example: `
notes add --title groceries milk eggs bread
notes add this is a note without a title
notes add -t standup --content "- ship the release"
notes add -i
`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !i.Interactive {
				return nil
			}
			p := &snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			title, err := p.String("Title", no.Title, nil)
			if err != nil {
				return err
			}
			content, err := p.String("Content", no.ContentOrArgs(args), nil)
			if err != nil {
				return err
			}
			no.Title = title
			return cmd.Flags().Set("content", content)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			e, err := openEnv(stderr())
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()
			a := add.Add{
				Service: e.service(),
				Title:   no.Title,
				Content: no.ContentOrArgs(args),
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{ShowID: true, Out: oo.Writer()},
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddNoteArgs(cmd, no)
	options.AddOutputArg(cmd, oo)
	options.InteractiveArgs(cmd, i, "Prompt for the title and content.")

	topLevel.AddCommand(cmd)
}
