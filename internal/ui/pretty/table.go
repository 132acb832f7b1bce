package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/aspxloc/pkg/config"
	"github.com/yaklabco/aspxloc/pkg/lint"
	"github.com/yaklabco/aspxloc/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding       = 2
	tableColumnCount   = 5 // SEV, FILE, LOC, MESSAGE, RULE
	perFileColumnCount = 4 // SEV, LOC, MESSAGE, RULE
	severityWidth      = 1
	minFileWidth       = 20
	minLocWidth        = 7
	minMessageWidth    = 35
	minRuleWidth       = 8
	heavySeparator     = "="
	lightSeparator     = "-"
	defaultTermWidth   = 100
	ellipsis           = "..."
)

// TableRow represents a single row in the diagnostic table.
type TableRow struct {
	File     string
	Location string
	Message  string
	Rule     string
	Severity config.Severity
}

// TableFormatter formats diagnostics as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	ruleFormat   config.RuleFormat
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, ruleFormat config.RuleFormat) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		ruleFormat:   ruleFormat,
	}
}

type columnWidths struct {
	file    int // 0 in per-file tables
	loc     int
	message int
	rule    int
}

func (w columnWidths) total() int {
	columns := perFileColumnCount
	width := severityWidth + w.loc + w.message + w.rule
	if w.file > 0 {
		columns = tableColumnCount
		width += w.file
	}
	return width + tablePadding*(columns-1) + 1
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	groups := t.collectRows(result)
	if len(groups) == 0 {
		return ""
	}

	widths := t.fitWidths(t.measure(groups, true))

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	for idx, group := range groups {
		if idx > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")

	return builder.String()
}

// FormatFileTable formats a single file's diagnostics as a standalone table.
// The file path is omitted from rows since callers print it as a heading.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(file.Result.Diagnostics))
	for idx := range file.Result.Diagnostics {
		rows = append(rows, t.row(file.Path, &file.Result.Diagnostics[idx]))
	}

	widths := t.fitWidths(t.measure([][]TableRow{rows}, false))

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths) + "\n")
	}
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatFileSummary(rows) + "\n")

	return builder.String()
}

func (t *TableFormatter) row(path string, diag *lint.Diagnostic) TableRow {
	return TableRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn),
		Message:  diag.Message,
		Rule:     config.FormatRuleID(t.ruleFormat, diag.RuleID, diag.RuleName),
		Severity: diag.Severity,
	}
}

// collectRows collects diagnostic rows grouped by file.
func (t *TableFormatter) collectRows(result *runner.Result) [][]TableRow {
	var groups [][]TableRow

	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		rows := make([]TableRow, 0, len(file.Result.Diagnostics))
		for idx := range file.Result.Diagnostics {
			rows = append(rows, t.row(file.Path, &file.Result.Diagnostics[idx]))
		}
		groups = append(groups, rows)
	}

	return groups
}

// measure finds the widest content of each column.
func (t *TableFormatter) measure(groups [][]TableRow, withFile bool) columnWidths {
	widths := columnWidths{
		loc:     minLocWidth,
		message: minMessageWidth,
		rule:    minRuleWidth,
	}
	if withFile {
		widths.file = minFileWidth
	}

	for _, group := range groups {
		for _, row := range group {
			if withFile {
				widths.file = max(widths.file, lipgloss.Width(row.File))
			}
			widths.loc = max(widths.loc, lipgloss.Width(row.Location))
			widths.message = max(widths.message, lipgloss.Width(row.Message))
			widths.rule = max(widths.rule, lipgloss.Width(row.Rule))
		}
	}

	return widths
}

// fitWidths shrinks the message column, then the file column, to fit the terminal.
func (t *TableFormatter) fitWidths(widths columnWidths) columnWidths {
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.message = max(minMessageWidth, widths.message-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 && widths.file > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}
	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	var header string
	if widths.file > 0 {
		header = fmt.Sprintf(" %s  %s  %s  %s  %s",
			pad("S", severityWidth), pad("FILE", widths.file), pad("LOC", widths.loc),
			pad("MESSAGE", widths.message), pad("RULE", widths.rule))
	} else {
		header = fmt.Sprintf(" %s  %s  %s  %s",
			pad("S", severityWidth), pad("LOC", widths.loc),
			pad("MESSAGE", widths.message), pad("RULE", widths.rule))
	}
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

// formatRow formats a single table row with severity-based styling.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	cells := []string{pad(severityMarker(row.Severity), severityWidth)}
	if widths.file > 0 {
		cells = append(cells, pad(truncateFilePath(row.File, widths.file), widths.file))
	}
	cells = append(cells,
		pad(truncateString(row.Location, widths.loc), widths.loc),
		pad(truncateString(row.Message, widths.message), widths.message),
		pad(truncateString(row.Rule, widths.rule), widths.rule),
	)

	return t.styles.RowForSeverity(row.Severity).Render(" " + strings.Join(cells, "  "))
}

func severityMarker(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "E"
	case config.SeverityWarning:
		return "W"
	case config.SeverityInfo:
		return "I"
	default:
		return " "
	}
}

// formatFileSummary formats a summary line for a single file.
func (t *TableFormatter) formatFileSummary(rows []TableRow) string {
	counts := make(map[config.Severity]int)
	for _, row := range rows {
		counts[row.Severity]++
	}

	var parts []string
	if n := counts[config.SeverityError]; n > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := counts[config.SeverityWarning]; n > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}
	if n := counts[config.SeverityInfo]; n > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", n)))
	}

	return " " + strings.Join(parts, " | ")
}

// formatLegend explains the severity column.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: E = error | W = warning | I = info")
	}

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s  %s  %s",
			t.styles.TableErrorRow.Render("E error"),
			t.styles.TableWarnRow.Render("W warning"),
			t.styles.TableInfoRow.Render("I info")),
	)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{files(stats.FilesProcessed) + " checked"}

	parts = append(parts, t.styles.severityCounts(stats)...)
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d errored", stats.FilesErrored)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// pad right-pads str with spaces to the given display width.
func pad(str string, width int) string {
	if gap := width - lipgloss.Width(str); gap > 0 {
		return str + strings.Repeat(" ", gap)
	}
	return str
}

// truncateString shortens str to maxLen characters, ending with "..." when cut.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// truncateFilePath shortens a path from the front so the file name stays visible.
func truncateFilePath(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return string(runes[len(runes)-maxLen:])
	}
	return ellipsis + string(runes[len(runes)-maxLen+len(ellipsis):])
}
