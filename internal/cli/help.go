package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/aspxloc/internal/ui/pretty"
)

// Command groups shown in the root help.
const (
	groupScan   = "scan"
	groupConfig = "config"
	groupTools  = "tools"
)

// helpStyles holds the styles used by the help templates.
type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{command: plain, heading: plain, name: plain, flag: plain, dim: plain}
	}

	return helpStyles{
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for the command tree.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const helpTemplate = `{{ command .CommandPath }}{{ with (or .Long .Short) }}

{{ trimRight . }}{{ end }}

{{ usage . }}`

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}

{{- if .Aliases }}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}{{ end }}

{{- if .HasExample }}

{{ heading "Examples:" }}
{{ dim .Example }}{{ end }}

{{- if .HasAvailableSubCommands }}
{{- range $group := groups . }}

{{ heading $group.Title }}
{{- range $group.Commands }}
  {{ name (pad .Name $group.Width) }}  {{ .Short }}{{ end }}{{ end }}{{ end }}

{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{ end }}

{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{ end }}

{{- if not .HasParent }}

{{ heading "Exit Codes:" }}
{{ exitCodes }}{{ end }}

{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{ end }}
`

// commandGroup is a titled list of subcommands.
type commandGroup struct {
	Title    string
	Commands []*cobra.Command
	Width    int
}

// ApplyToCommand installs the styled help and usage output on cmd and its
// subcommands, and sorts the subcommands into groups.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.AddGroup(
		&cobra.Group{ID: groupScan, Title: "Scanning:"},
		&cobra.Group{ID: groupConfig, Title: "Configuration:"},
		&cobra.Group{ID: groupTools, Title: "Tools:"},
	)
	for _, sub := range cmd.Commands() {
		if sub.GroupID == "" {
			sub.GroupID = groupFor(sub.Name())
		}
	}
	cmd.SetHelpCommandGroupID(groupTools)
	cmd.SetCompletionCommandGroupID(groupTools)

	funcs := h.funcs()
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	funcs["usage"] = func(c *cobra.Command) (string, error) {
		var buf strings.Builder
		if err := usage.Execute(&buf, c); err != nil {
			return "", fmt.Errorf("render usage: %w", err)
		}
		return buf.String(), nil
	}
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStdout(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func groupFor(name string) string {
	switch name {
	case "scan", "tokens":
		return groupScan
	case "rules", "init", "env":
		return groupConfig
	default:
		return groupTools
	}
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":   h.styles.command.Render,
		"heading":   h.styles.heading.Render,
		"name":      h.styles.name.Render,
		"dim":       h.styles.dim.Render,
		"join":      strings.Join,
		"pad":       pad,
		"trimRight": trimRightLines,
		"groups":    commandGroups,
		"flags":     h.renderFlags,
		"exitCodes": h.renderExitCodes,
	}
}

// commandGroups returns the available subcommands of cmd by group, in the
// order the groups were added. Ungrouped commands are listed last.
func commandGroups(cmd *cobra.Command) []commandGroup {
	byID := make(map[string]*commandGroup)
	groups := make([]*commandGroup, 0, len(cmd.Groups())+1)
	for _, g := range cmd.Groups() {
		group := &commandGroup{Title: g.Title}
		byID[g.ID] = group
		groups = append(groups, group)
	}
	other := &commandGroup{Title: "Additional Commands:"}

	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() && sub.Name() != "help" {
			continue
		}
		group, ok := byID[sub.GroupID]
		if !ok {
			group = other
		}
		group.Commands = append(group.Commands, sub)
		group.Width = max(group.Width, len(sub.Name()))
	}
	groups = append(groups, other)

	out := make([]commandGroup, 0, len(groups))
	for _, group := range groups {
		if len(group.Commands) > 0 {
			out = append(out, *group)
		}
	}
	return out
}

// renderFlags lays out a flag set as "-s, --long type   usage" rows.
func (h *HelpFormatter) renderFlags(fs *pflag.FlagSet) string {
	type row struct {
		names string
		plain int
		usage string
	}

	var rows []row
	width := 0

	fs.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		varName, usage := pflag.UnquoteUsage(flag)

		names := "    " + h.styles.flag.Render("--"+flag.Name)
		plain := len("    --" + flag.Name)
		if flag.Shorthand != "" {
			names = h.styles.flag.Render("-"+flag.Shorthand) + ", " + h.styles.flag.Render("--"+flag.Name)
			plain = len("-" + flag.Shorthand + ", --" + flag.Name)
		}
		if varName != "" {
			names += " " + h.styles.dim.Render(varName)
			plain += 1 + len(varName)
		}

		if def := flag.DefValue; def != "" && def != "false" && def != "[]" && def != "0" {
			usage += h.styles.dim.Render(fmt.Sprintf(" (default %s)", def))
		}

		rows = append(rows, row{names: names, plain: plain, usage: usage})
		width = max(width, plain)
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+r.names+strings.Repeat(" ", width-r.plain+3)+r.usage)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) renderExitCodes() string {
	codes := []struct {
		code int
		text string
	}{
		{ExitSuccess, "no error-level issues"},
		{ExitLintErrors, "error-level issues found"},
		{ExitLintWarnings, "warnings found with --strict"},
		{ExitInvalidUsage, "invalid command-line usage"},
		{ExitConfigError, "invalid configuration"},
		{ExitInternalError, "internal error"},
		{ExitIOError, "some files could not be read or parsed"},
	}

	lines := make([]string, 0, len(codes))
	for _, c := range codes {
		lines = append(lines, fmt.Sprintf("  %s  %s", h.styles.name.Render(pad(fmt.Sprint(c.code), 2)), c.text))
	}
	return strings.Join(lines, "\n")
}

func pad(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

func trimRightLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
