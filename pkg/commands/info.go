package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notes/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "show where notes are stored",
		Example: `
notes info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(stderr())
			if err != nil {
				return err
			}
			defer e.close()
			i := info.Info{Config: e.cfg, Persistence: e.p, Out: cmd.OutOrStdout()}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
