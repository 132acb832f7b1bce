package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxloc/internal/configloader"
	"github.com/yaklabco/aspxloc/internal/logging"
	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/fsutil"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new aspxloc configuration file",
		Long: `Create a new .aspxloc.yml configuration file in the current directory.
The file can be customized to enable or disable rules, change severities,
set rule options and list files to ignore.

Examples:
  aspxloc init                      Create minimal .aspxloc.yml
  aspxloc init --full               Create full config with all rules documented
  aspxloc init --pack strict        Start from the strict rule pack
  aspxloc init --format json        Create .aspxloc.json instead
  aspxloc init --output ci.yml      Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .aspxloc.yml or .aspxloc.json)")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Start from a rule pack: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractiveWithWriter(cmd.OutOrStdout())

	if flags.format != "yaml" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigFileName
		if flags.format == formatJSON {
			outputPath = strings.TrimSuffix(outputPath, ".yml") + ".json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := initContent(flags)
	if err != nil {
		return err
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	switch {
	case flags.pack != "":
		logger.Info("rules configured from pack", logging.FieldName, flags.pack)
	case flags.full:
		logger.Info("full template includes all rules with documentation")
	}

	logger.Info("run 'aspxloc rules' to see all available rules")

	return nil
}

func initContent(flags *initFlags) ([]byte, error) {
	if flags.pack == "" {
		content, err := config.GenerateTemplate(config.TemplateOptions{
			Full:   flags.full,
			Format: flags.format,
		})
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return content, nil
	}

	pack := rules.PackByName(flags.pack)
	if pack == nil {
		return nil, fmt.Errorf("%w: unknown pack %q; available: %s",
			ErrInvalidUsage, flags.pack, strings.Join(rules.PackNames(), ", "))
	}
	if flags.format != "yaml" {
		return nil, fmt.Errorf("%w: --pack only supports yaml output", ErrInvalidUsage)
	}

	cfg := config.NewConfig()
	pack.Apply(cfg, lint.DefaultRegistry.IDs())

	header := config.DefaultTemplateHeader() + "\n# Rule pack: " + pack.Name + "\n# " + pack.Description + "\n"
	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return nil, fmt.Errorf("generate pack config: %w", err)
	}
	return content, nil
}
