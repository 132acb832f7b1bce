package reporter

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/yaklabco/aspxloc/internal/ui/pretty"
	"github.com/yaklabco/aspxloc/pkg/analysis"
	"github.com/yaklabco/aspxloc/pkg/config"
)

// Summary table layout. All tables share one width.
const (
	tableWidth    = 90
	ruleColWidth  = 30
	fileColWidth  = 60
	textColWidth  = 52
	numColWidth   = 7
	warnColWidth  = 8
	maxRepeated   = 10
	ellipsis      = "…"
	separatorRune = "─"
)

// padRight and padLeft count runes and must run before styling.
func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s)))
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s))) + s
}

// truncateEnd keeps the head of s, truncateStart keeps its tail.
func truncateEnd(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + ellipsis
}

func truncateStart(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return ellipsis + string(runes[len(runes)-(width-1):])
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// column is one column of a summary table. The first column is left
// aligned and carries the row color; the rest are right aligned numbers.
type column struct {
	title string
	width int
}

type summaryRow struct {
	label  string
	values []int
	counts analysis.Counts
}

// SummaryRenderer prints per-rule and per-file tables followed by totals.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	sections := []func() bool{
		func() bool { return r.renderRules(report.ByRule) },
		func() bool { return r.renderFiles(report.ByFile) },
	}
	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		slices.Reverse(sections)
	}
	sections = append(sections, func() bool { return r.renderRepeated(report.ByText) })

	for _, section := range sections {
		if section() {
			fmt.Fprintln(r.out)
		}
	}

	r.renderTotals(report.Totals)
	return nil
}

func (r *SummaryRenderer) renderRules(rules []analysis.RuleAnalysis) bool {
	rows := lo.Map(rules, func(rule analysis.RuleAnalysis, _ int) summaryRow {
		name := config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName)
		return summaryRow{
			label:  truncateEnd(name, ruleColWidth-1),
			values: []int{rule.Issues, rule.Errors, rule.Warnings, rule.Infos},
			counts: rule.Counts,
		}
	})

	return r.table("Rules Summary", []column{
		{"Rule", ruleColWidth}, {"Count", numColWidth}, {"Errors", numColWidth},
		{"Warnings", warnColWidth}, {"Info", numColWidth},
	}, rows)
}

func (r *SummaryRenderer) renderFiles(files []analysis.FileAnalysis) bool {
	rows := lo.Map(files, func(file analysis.FileAnalysis, _ int) summaryRow {
		return summaryRow{
			label:  truncateStart(file.Path, fileColWidth-1),
			values: []int{file.Issues, file.Errors, file.Warnings},
			counts: file.Counts,
		}
	})

	return r.table("Files Summary", []column{
		{"File", fileColWidth}, {"Count", numColWidth}, {"Errors", numColWidth}, {"Warnings", warnColWidth},
	}, rows)
}

// renderRepeated lists strings flagged in more than one place, which are
// the best candidates for a shared resource.
func (r *SummaryRenderer) renderRepeated(texts []analysis.TextAnalysis) bool {
	repeated := lo.Filter(texts, func(text analysis.TextAnalysis, _ int) bool {
		return len(text.Locations) > 1
	})
	slices.SortStableFunc(repeated, func(a, b analysis.TextAnalysis) int {
		return len(b.Locations) - len(a.Locations)
	})
	if len(repeated) > maxRepeated {
		repeated = repeated[:maxRepeated]
	}

	rows := lo.Map(repeated, func(text analysis.TextAnalysis, _ int) summaryRow {
		return summaryRow{
			label:  truncateEnd(strconv.Quote(text.Text), textColWidth-1),
			values: []int{len(text.Locations), len(text.Files)},
			counts: text.Counts,
		}
	})

	return r.table("Repeated Strings", []column{
		{"Text", textColWidth}, {"Count", numColWidth}, {"Files", numColWidth},
	}, rows)
}

// table prints a titled table and reports whether anything was printed.
func (r *SummaryRenderer) table(title string, cols []column, rows []summaryRow) bool {
	if len(rows) == 0 {
		return false
	}

	separator := r.styles.TableSeparator.Render(strings.Repeat(separatorRune, tableWidth))
	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, separator)

	header := make([]string, 0, len(cols))
	for idx, col := range cols {
		cell := padLeft(col.title, col.width)
		if idx == 0 {
			cell = padRight(col.title, col.width)
		}
		header = append(header, r.styles.TableHeader.Render(cell))
	}
	fmt.Fprintln(r.out, strings.Join(header, " "))
	fmt.Fprintln(r.out, separator)

	for _, row := range rows {
		cells := make([]string, 0, len(cols))
		cells = append(cells, r.rowStyle(row.counts).Render(padRight(row.label, cols[0].width)))
		for idx, value := range row.values {
			cells = append(cells, padLeft(strconv.Itoa(value), cols[idx+1].width))
		}
		fmt.Fprintln(r.out, strings.Join(cells, " "))
	}

	return true
}

func (r *SummaryRenderer) rowStyle(counts analysis.Counts) lipgloss.Style {
	switch {
	case counts.Errors > 0:
		return r.styles.TableErrorRow
	case counts.Warnings > 0:
		return r.styles.TableWarnRow
	default:
		return lipgloss.NewStyle()
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	issues := fmt.Sprintf("%d %s", totals.Issues, plural(totals.Issues, "issue", "issues"))

	var breakdown []string
	for _, part := range []struct {
		n     int
		label string
		style lipgloss.Style
	}{
		{totals.Errors, "errors", r.styles.Error},
		{totals.Warnings, "warnings", r.styles.Warning},
		{totals.Infos, "info", r.styles.Info},
	} {
		if part.n > 0 {
			breakdown = append(breakdown, part.style.Render(fmt.Sprintf("%d %s", part.n, part.label)))
		}
	}
	if len(breakdown) > 0 {
		issues += " (" + strings.Join(breakdown, ", ") + ")"
	}

	files := fmt.Sprintf("in %d %s", totals.FilesWithIssues, plural(totals.FilesWithIssues, "file", "files"))
	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+issues+" "+files)

	if len(totals.Languages) > 0 {
		languages := lo.MapToSlice(totals.Languages, func(lang string, count int) string {
			return fmt.Sprintf("%s %d", lang, count)
		})
		slices.Sort(languages)
		fmt.Fprintln(r.out, r.styles.Dim.Render("Languages: "+strings.Join(languages, ", ")))
	}

	if totals.FilesErrored > 0 {
		fmt.Fprintln(r.out, r.styles.Failure.Render(fmt.Sprintf("%d %s could not be checked",
			totals.FilesErrored, plural(totals.FilesErrored, "file", "files"))))
	}
}
