package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxloc/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of aspxloc.`,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewInteractiveWithWriter(cmd.OutOrStdout())

			logger.Info("aspxloc",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}

	return cmd
}
