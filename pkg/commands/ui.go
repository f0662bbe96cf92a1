package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notes/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the notes screen",
		Example: `
notes ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command) error {
	// The screen owns the terminal, so logs only go to a configured file.
	e, err := openEnv(nil)
	if err != nil {
		return err
	}
	defer e.close()
	i := ui.UI{
		Persistence: e.p,
		Logger:      e.logger,
		Style:       e.cfg.Style,
		Version:     effectiveVersion(version),
	}
	return i.Do(cmd.Context())
}
