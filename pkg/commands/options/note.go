package options

import (
	"strings"

	"github.com/spf13/cobra"
)

// NoteOptions
type NoteOptions struct {
	Title   string
	Content string

	cmd *cobra.Command
}

func AddNoteArgs(cmd *cobra.Command, o *NoteOptions) {
	o.cmd = cmd
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title of the note.")
	cmd.Flags().StringVarP(&o.Content, "content", "c", "",
		"Content of the note, markdown is fine.")
}

// TitleChanged and ContentChanged report whether the flag was given, so an
// explicit empty value can clear a field.
func (o *NoteOptions) TitleChanged() bool {
	return o.cmd != nil && o.cmd.Flags().Changed("title")
}

func (o *NoteOptions) ContentChanged() bool {
	return o.cmd != nil && o.cmd.Flags().Changed("content")
}

// ContentOrArgs returns --content, or the positional args joined by spaces.
func (o *NoteOptions) ContentOrArgs(args []string) string {
	if o.ContentChanged() {
		return o.Content
	}
	return strings.Join(args, " ")
}
