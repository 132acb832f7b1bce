package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// renderedTabWidth matches the tab expansion lipgloss applies when rendering.
const renderedTabWidth = 4

// FormatDiagnostic formats a single diagnostic for terminal output using rule IDs.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, sourceLine, config.RuleFormatID)
}

// FormatDiagnosticWithFormat formats a diagnostic with configurable rule identifier format.
func (s *Styles) FormatDiagnosticWithFormat(diag *lint.Diagnostic, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn, markWidth(diag, sourceLine)))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// markWidth returns how many characters of sourceLine the diagnostic covers.
// Spans that continue on later lines are marked to the end of the line.
func markWidth(diag *lint.Diagnostic, sourceLine string) int {
	if diag.StartColumn <= 0 {
		return 0
	}

	lineLen := len([]rune(sourceLine))
	if diag.EndLine != diag.StartLine || diag.EndColumn <= diag.StartColumn {
		return max(1, lineLen-diag.StartColumn+1)
	}

	return min(diag.EndColumn-diag.StartColumn, max(1, lineLen-diag.StartColumn+1))
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError, config.SeverityWarning, config.SeverityInfo:
		return s.ForSeverity(sev).Render(string(sev))
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line and underlines width
// characters starting at the 1-based column.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column <= 0 {
		return builder.String()
	}

	runes := []rune(line)
	var padding strings.Builder
	for idx := 0; idx < column-1 && idx < len(runes); idx++ {
		if runes[idx] == '\t' {
			padding.WriteString(strings.Repeat(" ", renderedTabWidth))
			continue
		}
		padding.WriteString(strings.Repeat(" ", max(1, lipgloss.Width(string(runes[idx])))))
	}

	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}

	builder.WriteString(contextIndent + padding.String() + s.Caret.Render(marker) + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatFileError formats a file that could not be checked.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}
