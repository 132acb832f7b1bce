package cli

import (
	"os"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxloc/internal/configloader"
	"github.com/yaklabco/aspxloc/internal/logging"
)

func newEnvCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "List the ASPXLOC_* environment variables",
		Long: `List the environment variables aspxloc reads, with their current values.
Variables can also be set in a .env file in the working directory; values
from the process environment take precedence.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := configloader.ListEnvVars()
			names := lo.Keys(vars)
			slices.Sort(names)

			if format == formatJSON {
				type envInfo struct {
					Name        string `json:"name"`
					Description string `json:"description"`
					Value       string `json:"value,omitempty"`
				}
				list := lo.Map(names, func(name string, _ int) envInfo {
					return envInfo{Name: name, Description: vars[name], Value: os.Getenv(name)}
				})
				return encodeJSON(cmd.OutOrStdout(), list)
			}

			logger := logging.NewInteractiveWithWriter(cmd.OutOrStdout())
			for _, name := range names {
				value, set := os.LookupEnv(name)
				if !set {
					value = "(unset)"
				}
				logger.Info(name, logging.FieldDescription, vars[name], "value", value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}
