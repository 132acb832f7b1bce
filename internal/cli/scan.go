package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxloc/internal/configloader"
	"github.com/yaklabco/aspxloc/internal/logging"
	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/fsutil"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/lint/rules"
	"github.com/yaklabco/aspxloc/pkg/parser/webforms"
	"github.com/yaklabco/aspxloc/pkg/reporter"
	"github.com/yaklabco/aspxloc/pkg/runner"
)

type scanFlags struct {
	format            string
	jobs              int
	ignore            []string
	include           []string
	extensions        []string
	enable            []string
	disable           []string
	severityDefault   string
	strict            bool
	noContext         bool
	compact           bool
	perFile           bool
	ruleFormat        string
	summaryOrder      string
	output            string
	noDefaultExcludes bool
	followSymlinks    bool
	noDotEnv          bool
}

func newScanCommand(info BuildInfo) *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:     "scan [paths...]",
		Aliases: []string{"lint", "check"},
		Short:   "Scan Web Forms markup for hard-coded text",
		Long:    scanLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags, info)
		},
	}

	addScanFlags(cmd, flags)

	return cmd
}

const scanLongDescription = `Scan ASP.NET Web Forms markup for text that should be localized.

By default, scans all .aspx, .ascx and .master files under the current
directory, skipping bin/ and obj/. Specify paths to scan specific files or
directories; files named explicitly are always scanned.

Examples:
  aspxloc scan                          # Scan current directory
  aspxloc scan Web/Pages                # Scan one directory
  aspxloc scan Default.aspx             # Scan a single file
  aspxloc scan --disable code           # Skip string literals in code
  aspxloc scan --format sarif -o loc.sarif  # Write SARIF for code scanning
  aspxloc scan --strict                 # Fail on warnings too`

func runScan(cmd *cobra.Command, args []string, flags *scanFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	registry := lint.DefaultRegistry

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		IgnoreDotEnv: flags.noDotEnv,
		CLIConfig:    cliConfig(cmd, flags, format),
		Registry:     registry,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	finalCfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldPaths, loadResult.LoadedFrom,
		logging.FieldFormat, finalCfg.Format,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldExtensions, finalCfg.Extensions,
	)

	engine := lint.NewEngine(webforms.New(), registry)
	scanRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.Options{
		Paths:             args,
		WorkingDir:        workDir,
		Extensions:        finalCfg.Extensions,
		IncludeGlobs:      flags.include,
		ExcludeGlobs:      finalCfg.Ignore,
		NoDefaultExcludes: flags.noDefaultExcludes,
		FollowSymlinks:    flags.followSymlinks,
		Jobs:              finalCfg.Jobs,
		Config:            finalCfg,
	}

	result, err := scanRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	logger.Debug("scan finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	var out io.Writer = cmd.OutOrStdout()
	var fileBuf bytes.Buffer
	if flags.output != "" {
		out = &fileBuf
		colorMode = "never"
	}

	ruleFormat := finalCfg.RuleFormat
	if ruleFormat == "" {
		ruleFormat = config.RuleFormatName
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       out,
		Format:       reporter.Format(finalCfg.Format),
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		PerFile:      flags.perFile,
		RuleFormat:   ruleFormat,
		SummaryOrder: config.SummaryOrder(flags.summaryOrder),
		WorkingDir:   workDir,
		Rules:        rules.RuleInfos(registry),
		ToolVersion:  info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if flags.output != "" {
		written, err := writeReport(ctx, flags.output, fileBuf.Bytes())
		if err != nil {
			return err
		}
		if written {
			logger.Info("report written", logging.FieldOutput, flags.output)
		} else {
			logger.Info("report unchanged", logging.FieldOutput, flags.output)
		}
	}

	return errorForExitCode(ExitCodeFromResult(result, flags.strict))
}

// cliConfig collects the flags that were set explicitly, so unset flags do
// not mask configuration files.
func cliConfig(cmd *cobra.Command, flags *scanFlags, format reporter.Format) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(format)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("severity-default") {
		cfg.SeverityDefault = flags.severityDefault
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("ext") {
		cfg.Extensions = normalizeExtensions(flags.extensions)
	}
	if changed("enable") {
		cfg.EnableRules = flags.enable
	}
	if changed("disable") {
		cfg.DisableRules = flags.disable
	}

	return cfg
}

// normalizeExtensions accepts "aspx" as well as ".aspx".
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// writeReport stores a rendered report, creating the parent directory. An
// identical report already on disk is left untouched.
func writeReport(ctx context.Context, path string, content []byte) (bool, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create output directory: %w", err)
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, content, 0)
	if err != nil {
		return false, errors.Join(fmt.Errorf("write report %s", path), err)
	}
	return written, nil
}

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, summary")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only scan files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "markup file extensions (default .aspx, .ascx, .master)")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules to enable (ID, name or alias)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules to disable (ID, name or alias)")
	cmd.Flags().StringVar(&flags.severityDefault, "severity-default", "", "severity for rules without one: error, warning, info")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
	cmd.Flags().BoolVar(&flags.noDefaultExcludes, "no-default-excludes", false, "also scan bin/ and obj/ directories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.noDotEnv, "no-dotenv", false, "do not read ASPXLOC_* variables from .env")
}
