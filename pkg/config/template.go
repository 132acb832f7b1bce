package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// IncludeRules is a list of rule IDs to include.
	// If empty, all rules are included.
	IncludeRules []string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	Aliases     []string
	Options     map[string]any
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(opts)
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}

	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Default severity for all rules: error, warning, or info
# severity_default: warning

# File extensions treated as Web Forms markup
# extensions:
#   - ".aspx"
#   - ".ascx"
#   - ".master"

# File patterns to ignore (glob patterns)
# ignore:
#   - "bin/**"
#   - "obj/**"

# Rule-specific configuration
# rules:
#   LOC002:
#     enabled: true
#     severity: error
#     options:
#       attributes: [Text, ToolTip, HeaderText]
#   LOC005:
#     enabled: true
`)

	return buf.Bytes(), nil
}

// generateFullTemplate creates a full template with all rules documented.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}

	var buf bytes.Buffer

	buf.WriteString(`# aspxloc configuration - Full Template
# See: https://github.com/yaklabco/aspxloc
#
# This template includes all available rules with their default settings.
# Uncomment and modify settings as needed.

# Default severity for all rules: error, warning, or info
severity_default: warning

# File extensions treated as Web Forms markup
extensions:
  - ".aspx"
  - ".ascx"
  - ".master"

# File patterns to ignore (glob patterns)
ignore:
  - "bin/**"
  - "obj/**"
  - ".git/**"

# Rules can be configured by ID, name or alias (text, attributes, code,
# resources, culture). Use --enable and --disable to override on the
# command line.

# Rule-specific configuration
rules:
`)

	for _, rule := range selectRules(opts.IncludeRules) {
		fmt.Fprintf(&buf, "\n  # %s: %s", rule.ID, rule.Name)
		if len(rule.Aliases) > 0 {
			fmt.Fprintf(&buf, " (alias: %s)", strings.Join(rule.Aliases, ", "))
		}
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)

		if len(rule.Options) == 0 {
			continue
		}

		keys := make([]string, 0, len(rule.Options))
		for key := range rule.Options {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		buf.WriteString("    # options:\n")
		for _, key := range keys {
			fmt.Fprintf(&buf, "    #   %s: %s\n", key, formatOption(rule.Options[key]))
		}
	}

	return buf.Bytes(), nil
}

// selectRules returns the known rules sorted by ID, limited to include when set.
func selectRules(include []string) []RuleInfo {
	rules := getRuleInfos()

	if len(include) > 0 {
		includeSet := make(map[string]bool, len(include))
		for _, id := range include {
			includeSet[strings.ToUpper(id)] = true
		}
		filtered := make([]RuleInfo, 0, len(include))
		for _, r := range rules {
			if includeSet[r.ID] {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})

	return rules
}

func formatOption(value any) string {
	switch v := value.(type) {
	case []string:
		return "[" + strings.Join(v, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}

	// Fallback to a static list of known rules
	return []RuleInfo{
		{
			ID: "LOC001", Name: "hardcoded-text", Enabled: true, Severity: SeverityWarning,
			Description: "Text content should come from a resource file",
			Tags:        []string{"text"},
			Aliases:     []string{"text"},
		},
		{
			ID: "LOC002", Name: "hardcoded-attribute", Enabled: true, Severity: SeverityWarning,
			Description: "Localizable attribute values should come from a resource file",
			Tags:        []string{"attributes"},
			Aliases:     []string{"attributes"},
		},
		{
			ID: "LOC003", Name: "hardcoded-code-string", Enabled: true, Severity: SeverityInfo,
			Description: "String literals in server code may need localization",
			Tags:        []string{"code"},
			Aliases:     []string{"code"},
		},
		{
			ID: "LOC004", Name: "resource-expression", Enabled: true, Severity: SeverityError,
			Description: "Resource expressions must name a resource key",
			Tags:        []string{"expressions"},
			Aliases:     []string{"resources"},
		},
		{
			ID: "LOC005", Name: "page-culture", Enabled: false, Severity: SeverityInfo,
			Description: "Page directives should declare Culture and UICulture",
			Tags:        []string{"directives"},
			Aliases:     []string{"culture"},
		},
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	rulesMap := make(map[string]any)
	for _, r := range selectRules(opts.IncludeRules) {
		rulesMap[r.ID] = map[string]any{
			"enabled":  r.Enabled,
			"severity": string(r.Severity),
		}
	}

	cfg := map[string]any{
		"severity_default": string(SeverityWarning),
		"extensions":       DefaultExtensions(),
		"ignore":           []string{"bin/**", "obj/**", ".git/**"},
		"rules":            rulesMap,
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# aspxloc configuration
# See: https://github.com/yaklabco/aspxloc`
}
