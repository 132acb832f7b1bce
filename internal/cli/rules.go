package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxloc/internal/logging"
	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	packs      bool
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Severity    string         `json:"severity"`
	Enabled     bool           `json:"enabled"`
	Tags        []string       `json:"tags,omitempty"`
	Aliases     []string       `json:"aliases,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
}

// packInfo represents a rule pack in JSON output.
type packInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available localization rules",
		Long: `List all available rules with their IDs, descriptions, default
severity and whether they are enabled by default. Use --packs to list the
rule packs accepted by "aspxloc init --pack".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if flags.packs {
				return outputPacks(out, flags.format)
			}

			infos := rules.RuleInfos(lint.DefaultRegistry)
			if flags.format == formatJSON {
				return outputRulesJSON(out, infos)
			}

			logger := logging.NewInteractiveWithWriter(out)
			if len(infos) == 0 {
				logger.Info("no rules registered")
				return nil
			}

			logger.Info("available rules")

			ruleFormat := config.RuleFormat(flags.ruleFormat)
			for _, info := range infos {
				state := "enabled"
				if !info.Enabled {
					state = "disabled"
				}

				logger.Info(config.FormatRuleID(ruleFormat, info.ID, info.Name),
					logging.FieldSeverity, info.Severity,
					"default", state,
					"aliases", strings.Join(info.Aliases, ","),
					logging.FieldDescription, info.Description,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().BoolVar(&flags.packs, "packs", false, "list rule packs instead of rules")

	return cmd
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(out io.Writer, infos []config.RuleInfo) error {
	list := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		list = append(list, ruleInfo{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			Enabled:     info.Enabled,
			Tags:        info.Tags,
			Aliases:     info.Aliases,
			Options:     info.Options,
		})
	}

	return encodeJSON(out, list)
}

func outputPacks(out io.Writer, format string) error {
	packs := rules.Packs()

	if format == formatJSON {
		list := make([]packInfo, 0, len(packs))
		for _, pack := range packs {
			list = append(list, packInfo{Name: pack.Name, Description: pack.Description, Rules: pack.RuleIDs()})
		}
		return encodeJSON(out, list)
	}

	logger := logging.NewInteractiveWithWriter(out)
	for _, pack := range packs {
		logger.Info(pack.Name,
			logging.FieldDescription, pack.Description,
			"rules", strings.Join(pack.RuleIDs(), ","),
		)
	}
	return nil
}

func encodeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
